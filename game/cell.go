package game

import "fmt"

// Point addresses a cell by row and column.
type Point struct {
	Row, Col int
}

func (point Point) String() string {
	return fmt.Sprintf("(%d, %d)", point.Row, point.Col)
}

// Cell is a single square of the board. Boards hand out copies, so a Cell is
// a read-only view of the state at the time it was fetched.
type Cell struct {
	row, col int

	hasMine, isRevealed, isFlagged bool
	adjacentMines                  int
}

func (cell Cell) String() string {
	return fmt.Sprintf("Cell(%d, %d)", cell.row, cell.col)
}

func (cell Cell) Row() int {
	return cell.row
}

func (cell Cell) Col() int {
	return cell.col
}

func (cell Cell) Point() Point {
	return Point{Row: cell.row, Col: cell.col}
}

func (cell Cell) HasMine() bool {
	return cell.hasMine
}

func (cell Cell) IsRevealed() bool {
	return cell.isRevealed
}

func (cell Cell) IsFlagged() bool {
	return cell.isFlagged
}

// AdjacentMines is only meaningful once the board has been mined.
func (cell Cell) AdjacentMines() int {
	return cell.adjacentMines
}

func (cell Cell) State() CellState {
	switch {
	case cell.isFlagged:
		return Flag
	case !cell.isRevealed:
		return Unrevealed
	case cell.hasMine:
		return Mine
	default:
		return CellState(cell.adjacentMines)
	}
}

func (cell Cell) isBlank() bool {
	return cell.isRevealed && !cell.hasMine && cell.adjacentMines == 0
}

func (cell *Cell) reveal() {
	cell.isRevealed = true
	cell.isFlagged = false
}

func (cell *Cell) serialize() string {
	switch {
	case cell.hasMine:
		switch {
		case cell.isRevealed:
			return "*"
		case cell.isFlagged:
			return "F"
		default:
			return "O"
		}
	case cell.isFlagged:
		return "f"
	case cell.isRevealed:
		return "."
	default:
		return "#"
	}
}

// deserialize applies the player-visible part of c to the cell. Mines are
// handled by the caller, since they go through placement.
func (cell *Cell) deserialize(c rune) bool {
	switch c {
	case '*', '.':
		cell.isRevealed = true
	case 'F', 'f':
		cell.isFlagged = true
	case 'O', '#':
		cell.isRevealed = false
	default:
		return false
	}
	return true
}

func isMineRune(c rune) bool {
	return c == '*' || c == 'F' || c == 'O'
}
