package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config controls runtime behavior for the TUI app. Values come from
// defaults, then ALTLANG_* environment variables, then flags.
type Config struct {
	DataDir    string `env:"ALTLANG_DATA_DIR"`
	ContentDir string `env:"ALTLANG_CONTENT_DIR"`
	LogPath    string `env:"ALTLANG_LOG"`
	ASCIIOnly  bool   `env:"ALTLANG_ASCII"`
	Debug      bool   `env:"ALTLANG_DEBUG"`
	TTS        string `env:"ALTLANG_TTS"`
	UI         UIConfig
}

type UIConfig struct {
	StyleVariant string `env:"ALTLANG_STYLE"`
	MotionLevel  string `env:"ALTLANG_MOTION"`
}

func DefaultConfig() Config {
	return Config{
		TTS: "auto",
		UI: UIConfig{
			StyleVariant: "cozy_clean",
			MotionLevel:  "full",
		},
	}
}

// FromEnv overlays ALTLANG_* environment variables onto the defaults.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.TTS {
	case "", "auto", "off":
	default:
		return fmt.Errorf("invalid tts mode %q", c.TTS)
	}
	if c.TTS == "" {
		c.TTS = "auto"
	}
	switch c.UI.StyleVariant {
	case "", "modern_arcade", "cozy_clean", "retro_terminal":
	default:
		return fmt.Errorf("invalid ui style variant %q", c.UI.StyleVariant)
	}
	if c.UI.StyleVariant == "" {
		c.UI.StyleVariant = "cozy_clean"
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
		c.DataDir = filepath.Join(home, ".local", "share", "altlang")
	}

	return nil
}
