package game

import "fmt"

// OutOfBoundsError is returned when a coordinate lies outside the board.
type OutOfBoundsError struct {
	Row, Col      int
	Rows, Columns int
}

func (err *OutOfBoundsError) Error() string {
	return fmt.Sprintf("cell (%d, %d) is outside the %dx%d board", err.Row, err.Col, err.Rows, err.Columns)
}

// InsufficientSpaceError is returned when there are fewer hidden cells than
// mines left to place.
type InsufficientSpaceError struct {
	Hidden int
	Mines  int
}

func (err *InsufficientSpaceError) Error() string {
	return fmt.Sprintf("cannot place %d mines in %d hidden cells", err.Mines, err.Hidden)
}

type ConfigError struct {
	Rows, Columns, Mines int
	Reason               string
}

func (err *ConfigError) Error() string {
	return fmt.Sprintf("invalid board %dx%d with %d mines: %s", err.Rows, err.Columns, err.Mines, err.Reason)
}

// PlacementError is returned when a Placer produces a set of mines the board
// cannot accept. The board is left untouched.
type PlacementError struct {
	Reason string
	Err    error
}

func (err *PlacementError) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("mine placement failed: %s: %v", err.Reason, err.Err)
	}
	return "mine placement failed: " + err.Reason
}

func (err *PlacementError) Unwrap() error {
	return err.Err
}
