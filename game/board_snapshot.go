package game

import (
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// BoardSnapshot is a text encoding of a board, one character per cell:
//
//	#  hidden        O  hidden mine
//	.  revealed      *  revealed mine
//	f  flagged       F  flagged mine
//
// A board that has not placed its mines yet carries no mine characters, so
// Mines keeps the count it was built with. Snapshots without the mined flag
// are treated as mined whenever the grid holds a mine.
type BoardSnapshot struct {
	Seed            int64  `yaml:"seed"`
	Mines           int    `yaml:"mines"`
	Mined           bool   `yaml:"mined"`
	SerializedBoard string `yaml:"board"`
}

func (board *Board) Snapshot() BoardSnapshot {
	var builder strings.Builder
	builder.Grow(len(board.cells) + board.rows)

	for idx := range board.cells {
		if idx > 0 && idx%board.columns == 0 {
			builder.WriteByte('\n')
		}
		builder.WriteString(board.cells[idx].serialize())
	}

	return BoardSnapshot{
		Seed:            board.seed,
		Mines:           board.numMines,
		Mined:           board.mined,
		SerializedBoard: builder.String(),
	}
}

func (snapshot *BoardSnapshot) Serialize() (string, error) {
	out, err := yaml.Marshal(snapshot)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode snapshot")
	}
	return string(out), nil
}

func LoadSnapshot(in string) (*BoardSnapshot, error) {
	var snapshot BoardSnapshot
	if err := yaml.Unmarshal([]byte(in), &snapshot); err != nil {
		return nil, errors.Wrap(err, "failed to decode snapshot")
	}
	return &snapshot, nil
}

// CreateBoard rebuilds the board described by the snapshot. With fresh set,
// every cell starts hidden and unflagged, keeping only the mine layout. An
// unmined snapshot comes back unmined, with the default placer seeded from
// Seed.
func (snapshot *BoardSnapshot) CreateBoard(fresh bool) (*Board, error) {
	rows := strings.Split(strings.TrimRight(snapshot.SerializedBoard, "\n"), "\n")
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New("snapshot board is empty")
	}

	var mines FixedPlacer
	for row, line := range rows {
		if len(line) != len(rows[0]) {
			return nil, errors.Errorf("snapshot row %d has %d cells, expected %d", row, len(line), len(rows[0]))
		}
		for col, c := range line {
			if isMineRune(c) {
				mines = append(mines, Point{Row: row, Col: col})
			}
		}
	}

	mined := snapshot.Mined || len(mines) > 0
	switch {
	case mined && len(mines) == 0:
		return nil, errors.New("mined snapshot board has no mines")
	case mined && snapshot.Mines != 0 && snapshot.Mines != len(mines):
		return nil, errors.Errorf("snapshot board has %d mines, expected %d", len(mines), snapshot.Mines)
	}

	config := BoardConfig{
		Rows:    len(rows),
		Columns: len(rows[0]),
		Mines:   snapshot.Mines,
		Seed:    snapshot.Seed,
	}
	if mined {
		config.Mines = len(mines)
		config.Placer = mines
	}

	board, err := NewBoard(config)
	if err != nil {
		return nil, errors.Wrap(err, "invalid snapshot board")
	}
	if mined {
		board.seed = snapshot.Seed
		if err := board.PlaceMines(); err != nil {
			return nil, errors.Wrap(err, "invalid snapshot board")
		}
	}

	for row, line := range rows {
		for col, c := range line {
			cell := &board.cells[row*board.columns+col]
			if !cell.deserialize(c) {
				return nil, errors.Errorf("unknown cell %q at (%d, %d)", c, row, col)
			}
			if fresh {
				cell.isRevealed = false
				cell.isFlagged = false
			}
		}
	}

	return board, nil
}
