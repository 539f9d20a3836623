package constraint

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/they4kman/minefield/director"
	"github.com/they4kman/minefield/game"
	"github.com/they4kman/minefield/util/collections"
)

func TestMain(m *testing.M) {
	game.Log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func boardFromSnapshot(t *testing.T, serialized string) *game.Board {
	t.Helper()
	snapshot := game.BoardSnapshot{SerializedBoard: serialized}
	board, err := snapshot.CreateBoard(false)
	require.NoError(t, err)
	return board
}

func TestFirstMoveClicksCenter(t *testing.T) {
	board, err := game.NewBoardForDifficulty(game.Easy, nil)
	require.NoError(t, err)

	action, ok := New(1).Next(board)
	require.True(t, ok)
	assert.Equal(t, director.Action{Kind: director.Click, Point: game.Point{Row: 4, Col: 4}}, action)
}

func TestFlagsForcedMine(t *testing.T) {
	board := boardFromSnapshot(t, ""+
		"..\n"+
		".O")

	action, ok := New(1).Next(board)
	require.True(t, ok)
	assert.Equal(t, director.Action{Kind: director.Flag, Point: game.Point{Row: 1, Col: 1}}, action)
}

func TestChordsSatisfiedNumber(t *testing.T) {
	board := boardFromSnapshot(t, ""+
		"F.#\n"+
		"..#")

	action, ok := New(1).Next(board)
	require.True(t, ok)
	assert.Equal(t, director.Action{Kind: director.Chord, Point: game.Point{Row: 0, Col: 1}}, action)
}

func TestSubsetDeduction(t *testing.T) {
	// The 1 at (1, 0) puts its mine in {(2, 0), (2, 1)}; the 1 at (1, 1)
	// sees {(2, 0), (2, 1), (2, 2)}, so (2, 2) is safe.
	board := boardFromSnapshot(t, ""+
		"...\n"+
		"...\n"+
		"O##")

	observations := observe(board)
	_, ok := actDeliberate(observations)
	require.False(t, ok)

	action, ok := actSubset(observations)
	require.True(t, ok)
	assert.Equal(t, director.Action{Kind: director.Click, Point: game.Point{Row: 2, Col: 2}}, action)
}

func TestObserve(t *testing.T) {
	board := boardFromSnapshot(t, ""+
		"F.#\n"+
		"..#")

	observations := observe(board)
	require.Len(t, observations, 2)

	first := observations[0]
	assert.Equal(t, game.Point{Row: 0, Col: 1}, *first.origin)
	assert.Equal(t, 0, first.numMines)
	assert.True(t, first.cells.Equal(collections.NewSet(game.Point{Row: 0, Col: 2}, game.Point{Row: 1, Col: 2})))
	assert.Equal(t, "Obs[  (0, 1), 0 in (0, 2), (1, 2)]", first.String())
	assert.Equal(t, 0.0, first.MineProbability())
}

func TestOverlapDeduction(t *testing.T) {
	a, b, c := game.Point{Row: 0, Col: 0}, game.Point{Row: 0, Col: 1}, game.Point{Row: 0, Col: 2}
	d, e := game.Point{Row: 0, Col: 3}, game.Point{Row: 0, Col: 4}

	tests := []struct {
		name         string
		observations []*Observation
		expected     director.Action
	}{
		{
			// two mines in {a, b, c} force one into {b, c}, which is all
			// that {b, c, d} holds
			name: "safe",
			observations: []*Observation{
				{numMines: 2, cells: collections.NewSet(a, b, c)},
				{numMines: 1, cells: collections.NewSet(b, c, d)},
			},
			expected: director.Action{Kind: director.Click, Point: d},
		},
		{
			// {b, c} holds at most one mine, so {d, e} holds the other two
			name: "mined",
			observations: []*Observation{
				{numMines: 1, cells: collections.NewSet(a, b, c)},
				{numMines: 3, cells: collections.NewSet(b, c, d, e)},
			},
			expected: director.Action{Kind: director.Flag, Point: d},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, ok := actDeliberate(test.observations)
			require.False(t, ok)
			_, ok = actSubset(test.observations)
			require.False(t, ok)

			action, ok := actOverlap(test.observations)
			require.True(t, ok)
			assert.Equal(t, test.expected, action)
		})
	}

	_, ok := actOverlap([]*Observation{
		{numMines: 1, cells: collections.NewSet(a, b)},
		{numMines: 1, cells: collections.NewSet(b, c)},
	})
	assert.False(t, ok)
}

func TestLowestProbability(t *testing.T) {
	observations := []*Observation{
		{numMines: 1, cells: collections.NewSet(game.Point{Row: 0, Col: 0}, game.Point{Row: 0, Col: 1})},
		{numMines: 1, cells: collections.NewSet(game.Point{Row: 0, Col: 1}, game.Point{Row: 0, Col: 2}, game.Point{Row: 0, Col: 3})},
	}

	action, ok := actLowestProbability(observations)
	require.True(t, ok)
	assert.Equal(t, director.Action{Kind: director.Click, Point: game.Point{Row: 0, Col: 1}}, action)

	_, ok = actLowestProbability(nil)
	assert.False(t, ok)
}

func TestFlagsAreAlwaysMines(t *testing.T) {
	wins := 0
	for seed := int64(1); seed <= 20; seed++ {
		board, err := game.NewBoard(game.BoardConfig{Rows: 8, Columns: 8, Mines: 10, Seed: seed})
		require.NoError(t, err)

		outcome, _, err := director.Run(board, New(seed), 4*board.NumCells())
		require.NoError(t, err)
		assert.Contains(t, []director.Outcome{director.Won, director.Lost}, outcome)

		for _, cell := range board.Cells() {
			if cell.IsFlagged() {
				assert.True(t, cell.HasMine(), "seed %d: %v flagged without a mine", seed, cell)
			}
		}
		if outcome == director.Won {
			wins++
		}
	}
	assert.Greater(t, wins, 0)
}
