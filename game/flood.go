package game

import "github.com/gammazero/deque"

// flood reveals every unmined, hidden neighbour of a blank cell, repeating
// until no blank cell has a hidden, unmined neighbour left. All blank cells
// already on the board seed the frontier, so the result is the fixed point of
// repeatedly scanning the whole grid. Returns the number of cells revealed.
func (board *Board) flood() int {
	var frontier deque.Deque
	for idx := range board.cells {
		if board.cells[idx].isBlank() {
			frontier.PushBack(idx)
		}
	}

	numRevealed := 0
	neighbors := make([]int, 0, maxNeighbors)

	for frontier.Len() > 0 {
		idx := frontier.PopFront().(int)

		neighbors = board.neighborIndexes(idx, neighbors[:0])
		for _, neighbor := range neighbors {
			cell := &board.cells[neighbor]
			if cell.isRevealed || cell.hasMine {
				continue
			}

			cell.reveal()
			numRevealed++

			if cell.adjacentMines == 0 {
				frontier.PushBack(neighbor)
			}
		}
	}

	return numRevealed
}
