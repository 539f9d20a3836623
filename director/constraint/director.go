package constraint

import (
	"fmt"
	"strings"

	"github.com/they4kman/minefield/director"
	"github.com/they4kman/minefield/director/random"
	"github.com/they4kman/minefield/game"
	"github.com/they4kman/minefield/util/collections"
)

// Director plays by deduction from the numbers on the board, and guesses
// only when nothing can be deduced.
type Director struct {
	fallback *random.Director
}

func New(seed int64) *Director {
	return &Director{fallback: random.New(seed)}
}

// Observation states that exactly numMines of cells hold a mine.
type Observation struct {
	origin   *game.Point
	numMines int
	cells    collections.Set[game.Point]
}

func (observation Observation) String() string {
	var cellsRepr strings.Builder
	for i, cell := range sortedPoints(observation.cells) {
		if i > 0 {
			cellsRepr.WriteString(", ")
		}
		cellsRepr.WriteString(cell.String())
	}

	originRepr := "?"
	if observation.origin != nil {
		originRepr = observation.origin.String()
	}

	return fmt.Sprintf("Obs[%8s, %d in %s]", originRepr, observation.numMines, cellsRepr.String())
}

func (observation Observation) MineProbability() float64 {
	return float64(observation.numMines) / float64(len(observation.cells))
}

func pointLess(a, b game.Point) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}

func sortedPoints(points collections.Set[game.Point]) []game.Point {
	return points.Sorted(pointLess)
}

func (d *Director) Next(board *game.Board) (director.Action, bool) {
	if !board.Mined() {
		center := game.Point{Row: board.Rows() / 2, Col: board.Columns() / 2}
		return director.Action{Kind: director.Click, Point: center}, true
	}

	observations := observe(board)
	for _, observation := range observations {
		game.Log.Debugf("observed %s", observation)
	}

	actors := []func([]*Observation) (director.Action, bool){
		actDeliberate,
		actSubset,
		actOverlap,
		actLowestProbability,
	}
	for _, actor := range actors {
		if action, ok := actor(observations); ok {
			return action, true
		}
	}

	return d.fallback.Next(board)
}

// observe builds one observation per revealed number that still touches
// hidden, unflagged cells. Observations are ordered by origin.
func observe(board *game.Board) []*Observation {
	var observations []*Observation

	for _, cell := range board.Cells() {
		if !cell.IsRevealed() || cell.HasMine() || cell.AdjacentMines() == 0 {
			continue
		}

		origin := cell.Point()
		observation := Observation{
			origin:   &origin,
			numMines: cell.AdjacentMines(),
			cells:    make(collections.Set[game.Point]),
		}

		for _, point := range board.Neighbors(origin) {
			neighbor, _ := board.CellAt(point.Row, point.Col)
			if neighbor.IsRevealed() {
				continue
			}
			if neighbor.IsFlagged() {
				observation.numMines--
			} else {
				observation.cells.Add(point)
			}
		}

		// A negative count means the player flagged a safe cell; nothing
		// sound can be said around it.
		if observation.cells.Len() == 0 || observation.numMines < 0 {
			continue
		}
		observations = append(observations, &observation)
	}

	return observations
}

func actDeliberate(observations []*Observation) (director.Action, bool) {
	for _, observation := range observations {
		switch observation.numMines {
		case observation.cells.Len():
			return director.Action{Kind: director.Flag, Point: sortedPoints(observation.cells)[0]}, true
		case 0:
			return director.Action{Kind: director.Chord, Point: *observation.origin}, true
		}
	}
	return director.Action{}, false
}

// actSubset compares every pair of observations where one's cells are a
// strict subset of the other's. The cells left over hold the difference in
// mines, which can settle them all at once.
func actSubset(observations []*Observation) (director.Action, bool) {
	for _, inner := range observations {
		for _, outer := range observations {
			if inner == outer || inner.cells.Len() >= outer.cells.Len() || !inner.cells.IsSubset(outer.cells) {
				continue
			}

			split := Observation{
				numMines: outer.numMines - inner.numMines,
				cells:    outer.cells.Difference(inner.cells),
			}

			switch split.numMines {
			case 0:
				return director.Action{Kind: director.Click, Point: sortedPoints(split.cells)[0]}, true
			case split.cells.Len():
				return director.Action{Kind: director.Flag, Point: sortedPoints(split.cells)[0]}, true
			}
		}
	}
	return director.Action{}, false
}

// actOverlap handles observations that share only some of their cells. The
// mines the first one cannot fit outside the shared cells must sit inside
// them, and the shared cells hold at most as many mines as the first one has.
// Either bound can account for every mine of the second observation.
func actOverlap(observations []*Observation) (director.Action, bool) {
	for _, first := range observations {
		for _, second := range observations {
			if first == second {
				continue
			}
			shared := first.cells.Intersection(second.cells)
			if shared.Len() == 0 {
				continue
			}
			secondOnly := second.cells.Difference(shared)
			if secondOnly.Len() == 0 {
				continue
			}

			minShared := first.numMines - first.cells.Difference(shared).Len()
			if minShared > 0 && minShared == second.numMines {
				return director.Action{Kind: director.Click, Point: sortedPoints(secondOnly)[0]}, true
			}

			maxShared := first.numMines
			if shared.Len() < maxShared {
				maxShared = shared.Len()
			}
			if second.numMines-maxShared == secondOnly.Len() {
				return director.Action{Kind: director.Flag, Point: sortedPoints(secondOnly)[0]}, true
			}
		}
	}
	return director.Action{}, false
}

// actLowestProbability clicks the constrained cell that is least likely to
// hold a mine.
func actLowestProbability(observations []*Observation) (director.Action, bool) {
	cellProbabilities := make(map[game.Point]float64)
	for _, observation := range observations {
		probability := observation.MineProbability()
		for cell := range observation.cells {
			if past, ok := cellProbabilities[cell]; !ok || probability < past {
				cellProbabilities[cell] = probability
			}
		}
	}

	if len(cellProbabilities) == 0 {
		return director.Action{}, false
	}

	var best game.Point
	bestProbability := 2.0
	for cell, probability := range cellProbabilities {
		if probability < bestProbability || (probability == bestProbability && pointLess(cell, best)) {
			best, bestProbability = cell, probability
		}
	}

	return director.Action{Kind: director.Click, Point: best}, true
}
