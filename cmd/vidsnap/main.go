// Package main provides the CLI entry point for vidsnap.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ideamans/go-l10n"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/user/vidsnap/pkg/adapters/logger"
	"github.com/user/vidsnap/pkg/config"
	"github.com/user/vidsnap/pkg/ports"
)

var version = "dev"

func main() {
	// A missing .env is not an error
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, l10n.F("Failed to load .env: %s", err))
	}

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "vidsnap",
		Usage:   l10n.T("Export still frames from a video"),
		Version: version,
		Description: l10n.T("vidsnap captures screenshots from a video at equal intervals, " +
			"random timestamps or one random timestamp per equal segment."),
		Commands: []*cli.Command{
			exportCommand(),
			planCommand(),
			shotCommand(),
			configCommand(),
			{
				Name:  "version",
				Usage: l10n.T("Show version information"),
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, l10n.F("vidsnap version %s", version))
					return nil
				},
			},
		},
	}
}

// settingsFlags are shared by every command that builds an export job.
func settingsFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("Settings file (default: user config directory)")},
		&cli.StringFlag{Name: "project", Aliases: []string{"p"}, Usage: l10n.T("Project name, used as sub directory and file prefix")},
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: l10n.T("Export directory")},
		&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Usage: l10n.T("Sampling mode: equal, random or orthogonal")},
		&cli.Int64Flag{Name: "interval", Aliases: []string{"i"}, Usage: l10n.T("Interval in milliseconds for equal mode")},
		&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Usage: l10n.T("Number of captures for random and orthogonal modes")},
		&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: l10n.T("Image format: jpg, png, bmp or tiff")},
		&cli.IntFlag{Name: "quality", Aliases: []string{"q"}, Usage: l10n.T("JPEG quality (1-100)")},
		&cli.StringFlag{Name: "naming", Usage: l10n.T("File naming: timestamp or sequence")},
		&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: l10n.T("Number of parallel file writers")},
		&cli.DurationFlag{Name: "timeout", Usage: l10n.T("Give up on a single capture after this long")},
		&cli.IntFlag{Name: "max-width", Usage: l10n.T("Downscale frames wider than this")},
		&cli.BoolFlag{Name: "stamp", Usage: l10n.T("Burn the timestamp into each image")},
		&cli.Uint64Flag{Name: "seed", Usage: l10n.T("Random seed (0 = time based)")},
		&cli.StringFlag{Name: "backend", Usage: l10n.T("Decoder backend: auto, ffmpeg or mpeg")},
		&cli.StringFlag{Name: "ffmpeg", Usage: l10n.T("Path to the ffmpeg binary")},
		&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Usage: l10n.T("Log level (debug, info, warn, error)")},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: l10n.T("Suppress all log output")},
	}
}

// settingsPath returns the settings file selected by --config.
func settingsPath(c *cli.Context) string {
	if p := c.String("config"); p != "" {
		return p
	}
	return config.DefaultPath()
}

// loadSettings layers defaults, the settings file, VIDSNAP_* variables and
// command-line flags, in that order.
func loadSettings(c *cli.Context) (config.Config, error) {
	path := settingsPath(c)
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	applyFlags(c, &cfg)
	return cfg, cfg.Validate()
}

func applyFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("project") {
		cfg.Project = c.String("project")
	}
	if c.IsSet("out") {
		cfg.ExportPath = c.String("out")
	}
	if c.IsSet("mode") {
		cfg.Mode = c.String("mode")
	}
	if c.IsSet("interval") {
		cfg.IntervalMs = c.Int64("interval")
	}
	if c.IsSet("count") {
		switch cfg.Mode {
		case "orthogonal", "stratified", "2":
			cfg.OrthogonalCount = c.Int("count")
		default:
			cfg.RandomCount = c.Int("count")
		}
	}
	if c.IsSet("format") {
		cfg.Format = c.String("format")
	}
	if c.IsSet("quality") {
		cfg.Quality = c.Int("quality")
	}
	if c.IsSet("naming") {
		cfg.Naming = c.String("naming")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("timeout") {
		cfg.SeekTimeoutMs = c.Duration("timeout").Milliseconds()
	}
	if c.IsSet("max-width") {
		cfg.MaxWidth = c.Int("max-width")
	}
	if c.IsSet("stamp") {
		cfg.Stamp = c.Bool("stamp")
	}
	if c.IsSet("seed") {
		cfg.Seed = c.Uint64("seed")
	}
	if c.IsSet("backend") {
		cfg.Backend = c.String("backend")
	}
	if c.IsSet("ffmpeg") {
		cfg.FFmpegPath = c.String("ffmpeg")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
}

func newLogger(c *cli.Context, cfg config.Config) ports.Logger {
	if c.Bool("quiet") {
		return logger.NewNoop()
	}
	return logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
}

// videoArg returns the single positional VIDEO argument.
func videoArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", cli.Exit(l10n.T("Exactly one video file is required"), 2)
	}
	return c.Args().First(), nil
}
