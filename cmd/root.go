package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/they4kman/minefield/config"
	"github.com/they4kman/minefield/director"
	"github.com/they4kman/minefield/director/constraint"
	"github.com/they4kman/minefield/director/random"
	"github.com/they4kman/minefield/game"
)

var (
	gameConfig = config.Default()
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "minefield",
	Short: "Play manual or computer-driven Minesweeper in the terminal",
	Long: `minefield is a Minesweeper game which supports human- or
computer-driven playing.

Run with no arguments to play manually, one command per line
	r ROW COL   reveal a cell
	f ROW COL   toggle a flag
	c ROW COL   chord around a number
	q           quit

Use the director flag to make the computer play for you
	minefield --director constraint
`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		level, _ := logrus.ParseLevel(cfg.LogLevel)
		game.Log.SetLevel(level)
		game.Log.SetOutput(cmd.ErrOrStderr())
		game.Log.WithFields(cfg.Fields()).Debug("starting game")

		boardConfig, err := cfg.BoardConfig()
		if err != nil {
			return err
		}
		board, err := game.NewBoard(boardConfig)
		if err != nil {
			return err
		}

		if cfg.Director != "" {
			return runDirector(cmd, board, cfg)
		}
		return newSession(board, cmd.InOrStdin(), cmd.OutOrStdout()).play()
	},
}

// resolveConfig layers the config file, then any flag the user set.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("level") {
		cfg.Difficulty = gameConfig.Difficulty
	}
	if flags.Changed("rows") {
		cfg.Rows = gameConfig.Rows
	}
	if flags.Changed("columns") {
		cfg.Columns = gameConfig.Columns
	}
	if flags.Changed("mines") {
		cfg.Mines = gameConfig.Mines
	}
	if flags.Changed("seed") {
		cfg.Seed = gameConfig.Seed
	}
	if flags.Changed("director") {
		cfg.Director = gameConfig.Director
	}
	if flags.Changed("max-steps") {
		cfg.MaxSteps = gameConfig.MaxSteps
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = gameConfig.LogLevel
	}

	return cfg, cfg.Validate()
}

func newDirector(name string, seed int64) director.Director {
	switch strings.ToLower(name) {
	case "random":
		return random.New(seed)
	default:
		return constraint.New(seed)
	}
}

func runDirector(cmd *cobra.Command, board *game.Board, cfg config.Config) error {
	outcome, steps, err := director.Run(board, newDirector(cfg.Director, board.Seed()), cfg.MaxSteps)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	render(out, board, outcome == director.Won || outcome == director.Lost)
	fmt.Fprintf(out, "%s after %d moves\n", outcome, steps)
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type difficultyValue string

func newDifficultyValue(val game.Difficulty, p *string) *difficultyValue {
	*p = val.String()
	return (*difficultyValue)(p)
}

func (value *difficultyValue) String() string {
	return string(*value)
}

func (value *difficultyValue) Set(name string) error {
	difficulty, err := game.ParseDifficulty(name)
	if err != nil {
		return err
	}
	*value = difficultyValue(difficulty.String())
	return nil
}

func (value *difficultyValue) Type() string {
	return "difficulty"
}

func init() {
	flags := rootCmd.Flags()

	flags.StringVar(&configPath, "config", "", "Path to a YAML config file")
	flags.VarP(newDifficultyValue(game.Easy, &gameConfig.Difficulty), "level", "l", `Difficulty preset, ignored when rows, columns and mines are given.
easy: 8x8, 10 mines
medium: 16x16, 40 mines
hard: 16x30, 99 mines`)
	flags.IntVarP(&gameConfig.Rows, "rows", "r", 0, "Rows of a custom board")
	flags.IntVarP(&gameConfig.Columns, "columns", "c", 0, "Columns of a custom board")
	flags.IntVarP(&gameConfig.Mines, "mines", "m", 0, "Number of mines on a custom board")
	flags.Int64VarP(&gameConfig.Seed, "seed", "s", 0, "Seed for mine placement (0 picks one from the clock)")
	flags.StringVarP(&gameConfig.Director, "director", "d", "", "Make the computer play: random or constraint")
	flags.IntVar(&gameConfig.MaxSteps, "max-steps", gameConfig.MaxSteps, "Give up after this many director moves")
	flags.StringVar(&gameConfig.LogLevel, "log-level", gameConfig.LogLevel, "Log level: debug, info, warn or error")
}
