package main

import (
	"fmt"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/vidsnap/pkg/adapters/imagecodec"
	"github.com/user/vidsnap/pkg/adapters/osfilesystem"
	"github.com/user/vidsnap/pkg/adapters/smartsource"
	"github.com/user/vidsnap/pkg/exporter"
	"github.com/user/vidsnap/pkg/framewriter"
	"github.com/user/vidsnap/pkg/pipeline"
)

func shotCommand() *cli.Command {
	flags := append(settingsFlags(),
		&cli.DurationFlag{Name: "at", Aliases: []string{"t"}, Required: true, Usage: l10n.T("Position of the screenshot, e.g. 12.5s or 1m3s")},
	)

	return &cli.Command{
		Name:      "shot",
		Usage:     l10n.T("Save a single screenshot"),
		ArgsUsage: "VIDEO",
		Flags:     flags,
		Action:    runShot,
	}
}

func runShot(c *cli.Context) error {
	video, err := videoArg(c)
	if err != nil {
		return err
	}
	cfg, err := loadSettings(c)
	if err != nil {
		return err
	}
	log := newLogger(c, cfg)

	job, err := cfg.ToJob(video, "")
	if err != nil {
		return err
	}
	if err := exporter.ValidateJob(job); err != nil {
		return err
	}

	backend, err := smartsource.ParseBackend(cfg.Backend)
	if err != nil {
		return err
	}
	source := smartsource.New(smartsource.Options{Backend: backend, FFmpegPath: cfg.FFmpegPath}, log)
	durationMs, err := source.Open(c.Context, video)
	if err != nil {
		return err
	}
	defer source.Close()

	at := c.Duration("at").Milliseconds()
	if at < 0 || at >= durationMs {
		return fmt.Errorf("%w: position %d ms is outside the video (%d ms)", pipeline.ErrInvalidConfig, at, durationMs)
	}

	img, err := source.SeekAndDecode(c.Context, at, job.SeekTimeout)
	if err != nil {
		return err
	}

	fs := osfilesystem.New()
	writer := framewriter.New(fs, imagecodec.New(), log)
	path, err := writer.Write(pipeline.CapturedFrame{Index: 0, Total: 1, TimestampMs: at, Image: img}, job)
	if err != nil {
		return err
	}

	log.Info("Screenshot saved to %s", path)
	return nil
}
