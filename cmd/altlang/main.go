package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/hax2/altlang/internal/app"
	"github.com/hax2/altlang/internal/telemetry"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	var (
		dataDir    string
		contentDir string
		logPath    string
		asciiOnly  bool
		debug      bool
		tts        string
		style      string
		motion     string
	)

	cmd := &cobra.Command{
		Use:   "altlang",
		Short: "Terminal Spanish trainer",
		Long: `altlang is a terminal trainer for Spanish phrases: flashcards with
word-by-word breakdowns, multiple-choice quizzes, and typed
call-and-response drills. Progress persists between sessions.

Examples:
  altlang                          # launch with the builtin phrase packs
  altlang --content ./my-packs     # load extra packs from a directory
  altlang --tts off --motion off   # silent, animation-free session`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "directory for progress and settings (default ~/.local/share/altlang)")
	cmd.Flags().StringVar(&contentDir, "content", "", "directory of extra phrase packs (YAML)")
	cmd.Flags().StringVar(&logPath, "log", "", "write a JSON event log to this file")
	cmd.Flags().BoolVar(&asciiOnly, "ascii", false, "draw with plain ASCII borders")
	cmd.Flags().BoolVar(&debug, "debug", false, "log input events")
	cmd.Flags().StringVar(&tts, "tts", "", "speech mode: auto or off")
	cmd.Flags().StringVar(&style, "style", "", "ui style: cozy_clean, modern_arcade, or retro_terminal")
	cmd.Flags().StringVar(&motion, "motion", "", "animation level: full, reduced, or off")

	cmd.RunE = func(c *cobra.Command, _ []string) error {
		cfg, err := app.FromEnv()
		if err != nil {
			return fatal(err)
		}
		if c.Flags().Changed("data-dir") {
			cfg.DataDir = dataDir
		}
		if c.Flags().Changed("content") {
			cfg.ContentDir = contentDir
		}
		if c.Flags().Changed("log") {
			cfg.LogPath = logPath
		}
		if c.Flags().Changed("ascii") {
			cfg.ASCIIOnly = asciiOnly
		}
		if c.Flags().Changed("debug") {
			cfg.Debug = debug
		}
		if c.Flags().Changed("tts") {
			cfg.TTS = tts
		}
		if c.Flags().Changed("style") {
			cfg.UI.StyleVariant = style
		}
		if c.Flags().Changed("motion") {
			cfg.UI.MotionLevel = motion
		}
		if err := cfg.Validate(); err != nil {
			return fatal(err)
		}

		a, err := app.New(cfg)
		if err != nil {
			return fatal(err)
		}
		defer a.Close()

		if err := a.Run(context.Background()); err != nil {
			return fatal(err)
		}
		return nil
	}

	return cmd
}

func fatal(err error) error {
	telemetry.NewConsole().Error("altlang failed to start", "err", err)
	return err
}
