package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/they4kman/minefield/util/collections"
)

// scanFlood is the reference flood: scan the whole grid, opening the hidden
// unmined neighbours of every blank cell, until a pass opens nothing.
func scanFlood(board *Board) {
	neighbors := make([]int, 0, maxNeighbors)
	for {
		changed := false
		for idx := range board.cells {
			if !board.cells[idx].isBlank() {
				continue
			}
			neighbors = board.neighborIndexes(idx, neighbors[:0])
			for _, neighbor := range neighbors {
				cell := &board.cells[neighbor]
				if !cell.isRevealed && !cell.hasMine {
					cell.reveal()
					changed = true
				}
			}
		}
		if !changed {
			return
		}
	}
}

func cloneBoard(board *Board) *Board {
	clone := *board
	clone.cells = board.Cells()
	return &clone
}

func minedBoard(t *testing.T, config BoardConfig) *Board {
	t.Helper()
	board, err := NewBoard(config)
	require.NoError(t, err)
	require.NoError(t, board.PlaceMines())
	return board
}

func TestFloodMatchesFullScan(t *testing.T) {
	configs := []BoardConfig{
		{Rows: 8, Columns: 8, Mines: 10},
		{Rows: 16, Columns: 16, Mines: 40},
		{Rows: 16, Columns: 30, Mines: 99},
		{Rows: 16, Columns: 30, Mines: 20},
	}

	for _, config := range configs {
		for seed := int64(1); seed <= 3; seed++ {
			config.Seed = seed
			board := minedBoard(t, config)

			for idx := range board.cells {
				if board.cells[idx].hasMine {
					continue
				}
				point := board.cells[idx].Point()

				flooded := cloneBoard(board)
				_, err := flooded.Reveal(point.Row, point.Col)
				require.NoError(t, err)

				scanned := cloneBoard(board)
				scanned.cells[idx].reveal()
				if scanned.cells[idx].adjacentMines == 0 {
					scanFlood(scanned)
				}

				require.Equal(t, scanned.cells, flooded.cells, "seed %d, start %v", seed, point)
			}
		}
	}
}

// zeroComponent collects the 8-connected blank region around start together
// with its bordering ring of numbered cells.
func zeroComponent(board *Board, start int) collections.Set[int] {
	region := collections.NewSet(start)
	stack := []int{start}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, neighbor := range board.neighborIndexes(idx, nil) {
			cell := board.cells[neighbor]
			if cell.hasMine || region.Contains(neighbor) {
				continue
			}
			region.Add(neighbor)
			if cell.adjacentMines == 0 {
				stack = append(stack, neighbor)
			}
		}
	}
	return region
}

func TestFloodRevealsExactComponent(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		board := minedBoard(t, BoardConfig{Rows: 16, Columns: 30, Mines: 60, Seed: seed})

		for idx := range board.cells {
			cell := board.cells[idx]
			if cell.hasMine || cell.adjacentMines != 0 {
				continue
			}

			flooded := cloneBoard(board)
			_, err := flooded.Reveal(cell.row, cell.col)
			require.NoError(t, err)

			revealed := make(collections.Set[int])
			for i := range flooded.cells {
				if flooded.cells[i].isRevealed {
					revealed.Add(i)
					assert.False(t, flooded.cells[i].hasMine)
				}
			}

			assert.True(t, revealed.Equal(zeroComponent(board, idx)), "seed %d, start %v", seed, cell)
		}
	}
}

func TestFloodRevealsFlaggedSafeCells(t *testing.T) {
	board := newTestBoard(t, 3, 5, Point{0, 4})
	require.NoError(t, board.ToggleFlag(2, 4))

	_, err := board.Reveal(2, 0)
	require.NoError(t, err)

	cell := cellAt(t, board, 2, 4)
	assert.True(t, cell.IsRevealed())
	assert.False(t, cell.IsFlagged())
	assert.Equal(t, 0, board.FlaggedCount())
}

func TestFloodLeavesFlaggedMines(t *testing.T) {
	board := newTestBoard(t, 3, 5, Point{0, 4})
	require.NoError(t, board.ToggleFlag(0, 4))

	_, err := board.Reveal(2, 0)
	require.NoError(t, err)

	cell := cellAt(t, board, 0, 4)
	assert.False(t, cell.IsRevealed())
	assert.True(t, cell.IsFlagged())
	assert.Equal(t, 1, board.HiddenCount())
}
