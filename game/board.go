package game

import (
	"time"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

func init() {
	Log.SetLevel(logrus.WarnLevel)
}

// maxCells bounds the grid so rows*columns neither overflows nor asks for an
// unreasonable allocation.
const maxCells = 1 << 24

type BoardConfig struct {
	Rows, Columns int
	Mines         int

	// Placer chooses mine positions. When nil, a RandomPlacer seeded from
	// Seed is used.
	Placer Placer

	// Seed for the default placer. Zero picks a time-based seed.
	Seed int64
}

// Board is a rows x columns minefield. It is not safe for concurrent use;
// callers must serialize all mutating calls.
type Board struct {
	rows, columns int // in number of cells
	numMines      int
	cells         []Cell // row-major

	mined  bool
	seed   int64
	placer Placer
}

func NewBoard(config BoardConfig) (*Board, error) {
	switch {
	case config.Rows <= 0 || config.Columns <= 0:
		return nil, &ConfigError{config.Rows, config.Columns, config.Mines, "dimensions must be positive"}
	case config.Rows > maxCells/config.Columns:
		return nil, &ConfigError{config.Rows, config.Columns, config.Mines, "board too large"}
	case config.Mines <= 0:
		return nil, &ConfigError{config.Rows, config.Columns, config.Mines, "at least one mine is required"}
	case config.Mines >= config.Rows*config.Columns:
		return nil, &ConfigError{config.Rows, config.Columns, config.Mines, "too many mines for the board"}
	}

	seed := config.Seed
	placer := config.Placer
	if placer == nil {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		placer = NewRandomPlacer(seed)
	}

	board := &Board{
		rows:     config.Rows,
		columns:  config.Columns,
		numMines: config.Mines,
		cells:    make([]Cell, config.Rows*config.Columns),
		seed:     seed,
		placer:   placer,
	}
	for idx := range board.cells {
		board.cells[idx].row, board.cells[idx].col = idx/board.columns, idx%board.columns
	}

	return board, nil
}

func NewBoardForDifficulty(difficulty Difficulty, placer Placer) (*Board, error) {
	preset, ok := difficulty.Preset()
	if !ok {
		return nil, &ConfigError{Reason: "unknown difficulty " + difficulty.String()}
	}
	return NewBoard(BoardConfig{
		Rows:    preset.Rows,
		Columns: preset.Columns,
		Mines:   preset.Mines,
		Placer:  placer,
	})
}

func (board *Board) Rows() int {
	return board.rows
}

func (board *Board) Columns() int {
	return board.columns
}

func (board *Board) NumCells() int {
	return len(board.cells)
}

func (board *Board) TotalMines() int {
	return board.numMines
}

// Mined reports whether mines have been committed to the grid.
func (board *Board) Mined() bool {
	return board.mined
}

// Seed is the seed of the default placer, or zero if a custom placer was given.
func (board *Board) Seed() int64 {
	return board.seed
}

func (board *Board) HiddenCount() int {
	count := 0
	for idx := range board.cells {
		if !board.cells[idx].isRevealed {
			count++
		}
	}
	return count
}

func (board *Board) FlaggedCount() int {
	count := 0
	for idx := range board.cells {
		if board.cells[idx].isFlagged {
			count++
		}
	}
	return count
}

// RemainingMineEstimate is the mine count minus the flag count. It goes
// negative when the player places more flags than there are mines.
func (board *Board) RemainingMineEstimate() int {
	return board.numMines - board.FlaggedCount()
}

func (board *Board) index(row, col int) (int, error) {
	if row < 0 || col < 0 || row >= board.rows || col >= board.columns {
		return 0, &OutOfBoundsError{Row: row, Col: col, Rows: board.rows, Columns: board.columns}
	}
	return row*board.columns + col, nil
}

func (board *Board) CellAt(row, col int) (Cell, error) {
	idx, err := board.index(row, col)
	if err != nil {
		return Cell{}, err
	}
	return board.cells[idx], nil
}

func (board *Board) IsMined(row, col int) (bool, error) {
	cell, err := board.CellAt(row, col)
	if err != nil {
		return false, err
	}
	return cell.hasMine, nil
}

// Cells returns a row-major copy of every cell.
func (board *Board) Cells() []Cell {
	cells := make([]Cell, len(board.cells))
	copy(cells, board.cells)
	return cells
}

// Neighbors returns the in-bounds points surrounding point.
func (board *Board) Neighbors(point Point) []Point {
	idx, err := board.index(point.Row, point.Col)
	if err != nil {
		return nil
	}
	neighbors := board.neighborIndexes(idx, make([]int, 0, maxNeighbors))
	points := make([]Point, len(neighbors))
	for i, neighbor := range neighbors {
		points[i] = board.cells[neighbor].Point()
	}
	return points
}

// neighborIndexes appends the in-bounds neighbours of idx to out.
func (board *Board) neighborIndexes(idx int, out []int) []int {
	row, col := idx/board.columns, idx%board.columns
	for _, offset := range neighborOffsets {
		r, c := row+offset[0], col+offset[1]
		if r < 0 || c < 0 || r >= board.rows || c >= board.columns {
			continue
		}
		out = append(out, r*board.columns+c)
	}
	return out
}

// Reveal opens the cell at (row, col) and returns it. A flagged cell is left
// alone. The first reveal of a board also opens the surrounding cells and
// places the mines outside of that opening. Revealing a blank cell floods
// outwards to the first ring of numbered cells.
//
// The caller decides the outcome: the game is lost if the returned cell has a
// mine.
func (board *Board) Reveal(row, col int) (Cell, error) {
	idx, err := board.index(row, col)
	if err != nil {
		return Cell{}, err
	}

	cell := &board.cells[idx]
	if cell.isFlagged {
		return *cell, nil
	}

	if board.mined {
		cell.reveal()
	} else if err := board.openSafely(idx); err != nil {
		return *cell, err
	}

	if cell.hasMine || cell.adjacentMines > 0 {
		return *cell, nil
	}

	revealed := board.flood()
	Log.WithFields(logrus.Fields{
		"row":      row,
		"col":      col,
		"revealed": revealed,
	}).Debug("flooded blank region")

	return *cell, nil
}

// openSafely reveals idx and its neighbours, then places the mines. On
// failure every touched cell is restored.
func (board *Board) openSafely(idx int) error {
	opening := board.neighborIndexes(idx, append(make([]int, 0, maxNeighbors+1), idx))

	saved := make([]Cell, len(opening))
	for i, cellIdx := range opening {
		saved[i] = board.cells[cellIdx]
		board.cells[cellIdx].reveal()
	}

	if err := board.PlaceMines(); err != nil {
		for i, cellIdx := range opening {
			board.cells[cellIdx] = saved[i]
		}
		return err
	}
	return nil
}

// ToggleFlag flips the flag on a hidden cell. Revealed cells are left alone.
func (board *Board) ToggleFlag(row, col int) error {
	idx, err := board.index(row, col)
	if err != nil {
		return err
	}

	cell := &board.cells[idx]
	if !cell.isRevealed {
		cell.isFlagged = !cell.isFlagged
	}
	return nil
}

// Chord reveals the unflagged neighbours of a revealed, numbered cell once
// the player has flagged as many neighbours as the cell's number. It returns
// the points of any mines it uncovered.
func (board *Board) Chord(row, col int) ([]Point, error) {
	idx, err := board.index(row, col)
	if err != nil {
		return nil, err
	}

	cell := board.cells[idx]
	if !cell.isRevealed || cell.hasMine || cell.adjacentMines == 0 {
		return nil, nil
	}

	neighbors := board.neighborIndexes(idx, make([]int, 0, maxNeighbors))

	numFlaggedNeighbors := 0
	for _, neighbor := range neighbors {
		if board.cells[neighbor].isFlagged {
			numFlaggedNeighbors++
		}
	}
	if numFlaggedNeighbors != cell.adjacentMines {
		return nil, nil
	}

	var exploded []Point
	for _, neighbor := range neighbors {
		if board.cells[neighbor].isFlagged || board.cells[neighbor].isRevealed {
			continue
		}

		point := board.cells[neighbor].Point()
		revealed, err := board.Reveal(point.Row, point.Col)
		if err != nil {
			return exploded, err
		}
		if revealed.hasMine {
			exploded = append(exploded, point)
		}
	}
	return exploded, nil
}
