// Package config loads the settings of the minefield command from YAML.
package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/they4kman/minefield/game"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Difficulty names a preset. It is ignored when Rows, Columns and Mines
	// are all set.
	Difficulty string `yaml:"difficulty"`

	Rows    int `yaml:"rows"`
	Columns int `yaml:"columns"`
	Mines   int `yaml:"mines"`

	// Seed for mine placement and directors. Zero means time-based.
	Seed int64 `yaml:"seed"`

	// Director plays the game instead of stdin: "", "random" or "constraint"
	Director string `yaml:"director"`
	MaxSteps int    `yaml:"max_steps"`

	LogLevel string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Difficulty: game.Easy.String(),
		MaxSteps:   10000,
		LogLevel:   logrus.WarnLevel.String(),
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read config file")
	}

	config, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to parse config file %s", path)
	}
	return config, nil
}

func Parse(data []byte) (Config, error) {
	config := Default()
	if err := yaml.UnmarshalStrict(data, &config); err != nil {
		return Config{}, err
	}
	return config, config.Validate()
}

func (c Config) custom() bool {
	return c.Rows != 0 || c.Columns != 0 || c.Mines != 0
}

func (c Config) Validate() error {
	if c.custom() {
		if c.Rows <= 0 || c.Columns <= 0 || c.Mines <= 0 {
			return errors.New("rows, columns and mines must all be set for a custom board")
		}
	} else if _, err := game.ParseDifficulty(c.Difficulty); err != nil {
		return err
	}

	switch strings.ToLower(c.Director) {
	case "", "random", "constraint":
	default:
		return errors.Errorf("unknown director %q", c.Director)
	}

	if c.MaxSteps <= 0 {
		return errors.New("max_steps must be positive")
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "invalid log_level")
	}
	return nil
}

// BoardConfig resolves the board dimensions, either from the custom values
// or from the difficulty preset.
func (c Config) BoardConfig() (game.BoardConfig, error) {
	if c.custom() {
		return game.BoardConfig{Rows: c.Rows, Columns: c.Columns, Mines: c.Mines, Seed: c.Seed}, nil
	}

	difficulty, err := game.ParseDifficulty(c.Difficulty)
	if err != nil {
		return game.BoardConfig{}, err
	}
	preset, _ := difficulty.Preset()

	return game.BoardConfig{
		Rows:    preset.Rows,
		Columns: preset.Columns,
		Mines:   preset.Mines,
		Seed:    c.Seed,
	}, nil
}

func (c Config) Fields() logrus.Fields {
	return logrus.Fields{
		"difficulty": c.Difficulty,
		"rows":       c.Rows,
		"columns":    c.Columns,
		"mines":      c.Mines,
		"seed":       c.Seed,
		"director":   c.Director,
		"max_steps":  c.MaxSteps,
		"log_level":  c.LogLevel,
	}
}
