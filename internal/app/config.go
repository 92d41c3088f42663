package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config controls runtime behavior for the TUI app. Values come from
// defaults, then QUIZDOJO_* environment variables, then flags.
type Config struct {
	DataDir   string `env:"QUIZDOJO_DATA_DIR"`
	BankPath  string `env:"QUIZDOJO_BANK"`
	LogPath   string `env:"QUIZDOJO_LOG"`
	ExportDir string `env:"QUIZDOJO_EXPORT_DIR"`

	Quiz QuizConfig
	UI   UIConfig
}

type QuizConfig struct {
	TimeBudgetSec int `env:"QUIZDOJO_TIME_BUDGET_SEC"`
	QuestionCount int `env:"QUIZDOJO_QUESTION_COUNT"`
	TopN          int `env:"QUIZDOJO_TOP_N"`
}

type UIConfig struct {
	StyleVariant string `env:"QUIZDOJO_STYLE"`
	MotionLevel  string `env:"QUIZDOJO_MOTION"`
	ASCIIOnly    bool   `env:"QUIZDOJO_ASCII"`
}

func DefaultConfig() Config {
	return Config{
		BankPath: "questions.json",
		Quiz: QuizConfig{
			TimeBudgetSec: 300,
			QuestionCount: 15,
			TopN:          10,
		},
		UI: UIConfig{
			StyleVariant: "modern_arcade",
			MotionLevel:  "full",
		},
	}
}

// FromEnv layers QUIZDOJO_* variables over the defaults.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Quiz.TimeBudgetSec <= 0 {
		c.Quiz.TimeBudgetSec = 300
	}
	if c.Quiz.QuestionCount <= 0 {
		c.Quiz.QuestionCount = 15
	}
	if c.Quiz.TopN <= 0 {
		c.Quiz.TopN = 10
	}
	if c.BankPath == "" {
		c.BankPath = "questions.json"
	}
	switch c.UI.StyleVariant {
	case "", "modern_arcade", "cozy_clean", "retro_terminal":
	default:
		return fmt.Errorf("invalid ui style variant %q", c.UI.StyleVariant)
	}
	if c.UI.StyleVariant == "" {
		c.UI.StyleVariant = "modern_arcade"
	}
	switch c.UI.MotionLevel {
	case "", "off", "reduced", "full":
	default:
		return fmt.Errorf("invalid ui motion level %q", c.UI.MotionLevel)
	}
	if c.UI.MotionLevel == "" {
		c.UI.MotionLevel = "full"
	}

	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.New("cannot resolve user home directory")
		}
		c.DataDir = filepath.Join(home, ".local", "share", "quizdojo")
	}
	if c.ExportDir == "" {
		c.ExportDir = filepath.Join(c.DataDir, "exports")
	}
	return nil
}
