package game

import (
	"fmt"
	"strings"
)

// CellState is the render hint for a single cell, as seen by a player.
type CellState int

const (
	Unrevealed CellState = iota - 1
	Empty
	Number1
	Number2
	Number3
	Number4
	Number5
	Number6
	Number7
	Number8
	Flag
	Mine
)

var CellStates = []CellState{
	Unrevealed,
	Empty,
	Number1,
	Number2,
	Number3,
	Number4,
	Number5,
	Number6,
	Number7,
	Number8,
	Flag,
	Mine,
}

type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// Preset is the board geometry and mine count of a Difficulty.
type Preset struct {
	Rows, Columns int
	Mines         int
}

var presets = [...]Preset{
	Easy:   {Rows: 8, Columns: 8, Mines: 10},
	Medium: {Rows: 16, Columns: 16, Mines: 40},
	Hard:   {Rows: 16, Columns: 30, Mines: 99},
}

var difficultyNames = [...]string{
	Easy:   "easy",
	Medium: "medium",
	Hard:   "hard",
}

func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

func (difficulty Difficulty) valid() bool {
	return difficulty >= 0 && int(difficulty) < len(presets)
}

// Preset returns the preset backing the difficulty, or false for unknown values.
func (difficulty Difficulty) Preset() (Preset, bool) {
	if !difficulty.valid() {
		return Preset{}, false
	}
	return presets[difficulty], true
}

func (difficulty Difficulty) String() string {
	if !difficulty.valid() {
		return fmt.Sprintf("Difficulty(%d)", int(difficulty))
	}
	return difficultyNames[difficulty]
}

func ParseDifficulty(name string) (Difficulty, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, difficulty := range Difficulties() {
		if difficultyNames[difficulty] == name {
			return difficulty, nil
		}
	}
	return 0, fmt.Errorf("unknown difficulty %q", name)
}

const (
	// neighbourhood of a cell, not counting the cell itself
	maxNeighbors = 8
)

var neighborOffsets = [maxNeighbors][2]int{
	{-1, -1},
	{-1, 0},
	{-1, 1},
	{0, -1},
	{0, 1},
	{1, -1},
	{1, 0},
	{1, 1},
}
