package game

import (
	"math/rand"

	"github.com/sirupsen/logrus"
	"github.com/they4kman/minefield/util/collections"
)

// Placer chooses where the mines of a board go. It is consulted once, after
// the safe opening has been revealed, and must return exactly
// board.TotalMines() distinct points on hidden cells.
type Placer interface {
	Place(board *Board) ([]Point, error)
}

// RandomPlacer draws mine positions uniformly from the hidden cells by
// rejection sampling.
type RandomPlacer struct {
	Rand *rand.Rand
}

func NewRandomPlacer(seed int64) *RandomPlacer {
	return &RandomPlacer{Rand: rand.New(rand.NewSource(seed))}
}

func (placer *RandomPlacer) Place(board *Board) ([]Point, error) {
	// Sampling only terminates if there is room for every mine
	if hidden := board.HiddenCount(); hidden < board.numMines {
		return nil, &InsufficientSpaceError{Hidden: hidden, Mines: board.numMines}
	}

	chosen := make(collections.Set[int], board.numMines)
	points := make([]Point, 0, board.numMines)

	for len(points) < board.numMines {
		row, col := placer.Rand.Intn(board.rows), placer.Rand.Intn(board.columns)
		idx := row*board.columns + col

		if board.cells[idx].isRevealed || chosen.Contains(idx) {
			continue
		}

		chosen.Add(idx)
		points = append(points, Point{Row: row, Col: col})
	}

	return points, nil
}

// FixedPlacer puts the mines on a predetermined set of points.
type FixedPlacer []Point

func (placer FixedPlacer) Place(*Board) ([]Point, error) {
	return append([]Point(nil), placer...), nil
}

// PlaceMines commits the board's mines and computes every cell's adjacency
// count. It does nothing once the board is mined.
func (board *Board) PlaceMines() error {
	if board.mined {
		return nil
	}

	if hidden := board.HiddenCount(); hidden < board.numMines {
		return &InsufficientSpaceError{Hidden: hidden, Mines: board.numMines}
	}

	points, err := board.placer.Place(board)
	if err != nil {
		if _, ok := err.(*InsufficientSpaceError); ok {
			return err
		}
		return &PlacementError{Reason: "placer failed", Err: err}
	}

	mines, err := board.validatePlacement(points)
	if err != nil {
		return err
	}

	for idx := range mines {
		board.cells[idx].hasMine = true
	}
	board.computeAdjacency()
	board.mined = true

	Log.WithFields(logrus.Fields{
		"rows":    board.rows,
		"columns": board.columns,
		"mines":   board.numMines,
	}).Debug("placed mines")

	return nil
}

func (board *Board) validatePlacement(points []Point) (collections.Set[int], error) {
	if len(points) != board.numMines {
		return nil, &PlacementError{Reason: "wrong number of mines"}
	}

	mines := make(collections.Set[int], len(points))
	for _, point := range points {
		idx, err := board.index(point.Row, point.Col)
		if err != nil {
			return nil, &PlacementError{Reason: "mine out of bounds", Err: err}
		}
		if board.cells[idx].isRevealed {
			return nil, &PlacementError{Reason: "mine on revealed cell " + point.String()}
		}
		if mines.Contains(idx) {
			return nil, &PlacementError{Reason: "duplicate mine at " + point.String()}
		}
		mines.Add(idx)
	}
	return mines, nil
}

func (board *Board) computeAdjacency() {
	neighbors := make([]int, 0, maxNeighbors)

	for idx := range board.cells {
		cell := &board.cells[idx]
		if cell.hasMine {
			continue
		}

		cell.adjacentMines = 0
		neighbors = board.neighborIndexes(idx, neighbors[:0])
		for _, neighbor := range neighbors {
			if board.cells[neighbor].hasMine {
				cell.adjacentMines++
			}
		}
	}
}
