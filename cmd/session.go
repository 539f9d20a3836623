package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/they4kman/minefield/director"
	"github.com/they4kman/minefield/game"
)

var stateRunes = map[game.CellState]rune{
	game.Unrevealed: '#',
	game.Empty:      '.',
	game.Flag:       'F',
	game.Mine:       '*',
}

func cellRune(cell game.Cell, showMines bool) rune {
	if showMines && cell.HasMine() && !cell.IsRevealed() {
		if cell.IsFlagged() {
			return 'F'
		}
		return 'o'
	}

	state := cell.State()
	if c, ok := stateRunes[state]; ok {
		return c
	}
	return rune('0' + int(state))
}

// render prints the board with row and column indexes, followed by the mine
// counter. With showMines, hidden mines are drawn too.
func render(out io.Writer, board *game.Board, showMines bool) {
	var builder strings.Builder

	builder.WriteString("    ")
	for col := 0; col < board.Columns(); col++ {
		fmt.Fprintf(&builder, "%2d", col%100)
	}
	builder.WriteByte('\n')

	for idx, cell := range board.Cells() {
		if idx%board.Columns() == 0 {
			if idx > 0 {
				builder.WriteByte('\n')
			}
			fmt.Fprintf(&builder, "%3d ", cell.Row())
		}
		builder.WriteByte(' ')
		builder.WriteRune(cellRune(cell, showMines))
	}
	builder.WriteByte('\n')

	fmt.Fprintf(&builder, "mines left: %03d\n", board.RemainingMineEstimate())
	io.WriteString(out, builder.String())
}

type session struct {
	board *game.Board
	in    *bufio.Scanner
	out   io.Writer
}

func newSession(board *game.Board, in io.Reader, out io.Writer) *session {
	return &session{
		board: board,
		in:    bufio.NewScanner(in),
		out:   out,
	}
}

func parseCommand(line string) (director.Action, bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return director.Action{}, false, fmt.Errorf("empty command")
	}
	if fields[0] == "q" {
		return director.Action{}, true, nil
	}
	if len(fields) != 3 {
		return director.Action{}, false, fmt.Errorf("expected: %s ROW COL", fields[0])
	}

	var action director.Action
	switch fields[0] {
	case "r":
		action.Kind = director.Click
	case "f":
		action.Kind = director.Flag
	case "c":
		action.Kind = director.Chord
	default:
		return director.Action{}, false, fmt.Errorf("unknown command %q", fields[0])
	}

	row, err := strconv.Atoi(fields[1])
	if err != nil {
		return director.Action{}, false, fmt.Errorf("invalid row %q", fields[1])
	}
	col, err := strconv.Atoi(fields[2])
	if err != nil {
		return director.Action{}, false, fmt.Errorf("invalid column %q", fields[2])
	}
	action.Point = game.Point{Row: row, Col: col}

	return action, false, nil
}

func (s *session) play() error {
	render(s.out, s.board, false)

	for {
		fmt.Fprint(s.out, "> ")
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}

		action, quit, err := parseCommand(s.in.Text())
		if quit {
			return nil
		}
		if err != nil {
			fmt.Fprintln(s.out, err)
			continue
		}

		outcome, err := director.Apply(s.board, action)
		if err != nil {
			// A failed move leaves the board untouched, so the player can retry
			fmt.Fprintln(s.out, err)
			continue
		}

		switch outcome {
		case director.Won:
			render(s.out, s.board, true)
			fmt.Fprintln(s.out, "WIN!")
			return nil
		case director.Lost:
			render(s.out, s.board, true)
			fmt.Fprintln(s.out, "LOSE :(")
			return nil
		default:
			render(s.out, s.board, false)
		}
	}
}
