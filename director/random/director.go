package random

import (
	"math/rand"

	"github.com/they4kman/minefield/director"
	"github.com/they4kman/minefield/game"
)

// Director clicks hidden, unflagged cells in a shuffled order.
type Director struct {
	rand  *rand.Rand
	order []game.Point
	next  int
}

func New(seed int64) *Director {
	return &Director{rand: rand.New(rand.NewSource(seed))}
}

func (d *Director) init(board *game.Board) {
	d.order = make([]game.Point, 0, board.NumCells())
	for _, cell := range board.Cells() {
		d.order = append(d.order, cell.Point())
	}

	d.rand.Shuffle(len(d.order), func(i, j int) {
		d.order[i], d.order[j] = d.order[j], d.order[i]
	})
	d.next = 0
}

func (d *Director) Next(board *game.Board) (director.Action, bool) {
	if len(d.order) != board.NumCells() {
		d.init(board)
	}

	// Revealed cells stay revealed, so the cursor only moves forward past them
	for d.next < len(d.order) {
		cell, err := board.CellAt(d.order[d.next].Row, d.order[d.next].Col)
		if err != nil || !cell.IsRevealed() {
			break
		}
		d.next++
	}

	for _, point := range d.order[d.next:] {
		cell, err := board.CellAt(point.Row, point.Col)
		if err != nil {
			continue
		}
		if !cell.IsRevealed() && !cell.IsFlagged() {
			return director.Action{Kind: director.Click, Point: point}, true
		}
	}
	return director.Action{}, false
}
