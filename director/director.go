// Package director holds the automated players that drive a game.Board
// through its public API, the same way an input layer would.
package director

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/they4kman/minefield/game"
)

type ActionKind int

const (
	Click ActionKind = iota
	Flag
	Chord
)

func (kind ActionKind) String() string {
	switch kind {
	case Click:
		return "click"
	case Flag:
		return "flag"
	case Chord:
		return "chord"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(kind))
	}
}

type Action struct {
	Kind  ActionKind
	Point game.Point
}

func (action Action) String() string {
	return fmt.Sprintf("%s %s", action.Kind, action.Point)
}

type Director interface {
	// Next returns the action to take on board, or false when the director
	// has nothing left to try.
	Next(board *game.Board) (Action, bool)
}

type Outcome int

const (
	Ongoing Outcome = iota
	Won
	Lost
	Stalled
)

func (outcome Outcome) String() string {
	switch outcome {
	case Ongoing:
		return "ongoing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	case Stalled:
		return "stalled"
	default:
		return fmt.Sprintf("Outcome(%d)", int(outcome))
	}
}

// Evaluate decides the outcome of a board: lost once any mine is revealed,
// won once only the mines are left hidden.
func Evaluate(board *game.Board) Outcome {
	if !board.Mined() {
		return Ongoing
	}
	for _, cell := range board.Cells() {
		if cell.IsRevealed() && cell.HasMine() {
			return Lost
		}
	}
	if board.HiddenCount() == board.TotalMines() {
		return Won
	}
	return Ongoing
}

// Apply performs action on board and returns the resulting outcome.
func Apply(board *game.Board, action Action) (Outcome, error) {
	var err error

	switch action.Kind {
	case Click:
		_, err = board.Reveal(action.Point.Row, action.Point.Col)
	case Flag:
		err = board.ToggleFlag(action.Point.Row, action.Point.Col)
	case Chord:
		_, err = board.Chord(action.Point.Row, action.Point.Col)
	default:
		err = fmt.Errorf("unknown action %v", action.Kind)
	}
	if err != nil {
		return Ongoing, err
	}

	return Evaluate(board), nil
}

// Run lets director play board until the game ends, the director gives up or
// maxSteps actions have been taken. It returns the outcome and the number of
// actions taken.
func Run(board *game.Board, director Director, maxSteps int) (Outcome, int, error) {
	for step := 0; step < maxSteps; step++ {
		action, ok := director.Next(board)
		if !ok {
			return Stalled, step, nil
		}

		outcome, err := Apply(board, action)
		if err != nil {
			return outcome, step, err
		}

		game.Log.WithFields(logrus.Fields{
			"step":    step,
			"action":  action.String(),
			"outcome": outcome.String(),
		}).Debug("director acted")

		if outcome != Ongoing {
			return outcome, step + 1, nil
		}
	}
	return Stalled, maxSteps, nil
}
