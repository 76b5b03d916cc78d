package main

import (
	"fmt"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/vidsnap/pkg/adapters/smartsource"
	"github.com/user/vidsnap/pkg/framewriter"
	"github.com/user/vidsnap/pkg/planner"
)

func planCommand() *cli.Command {
	flags := append(settingsFlags(),
		&cli.DurationFlag{Name: "duration", Aliases: []string{"d"}, Usage: l10n.T("Plan for this duration instead of opening a video")},
	)

	return &cli.Command{
		Name:      "plan",
		Usage:     l10n.T("Print the capture timestamps without exporting"),
		ArgsUsage: "[VIDEO]",
		Flags:     flags,
		Action:    runPlan,
	}
}

func runPlan(c *cli.Context) error {
	cfg, err := loadSettings(c)
	if err != nil {
		return err
	}
	log := newLogger(c, cfg)

	job, err := cfg.ToJob(c.Args().First(), "")
	if err != nil {
		return err
	}

	durationMs := c.Duration("duration").Milliseconds()
	if durationMs <= 0 {
		video, err := videoArg(c)
		if err != nil {
			return err
		}
		backend, err := smartsource.ParseBackend(cfg.Backend)
		if err != nil {
			return err
		}
		source := smartsource.New(smartsource.Options{Backend: backend, FFmpegPath: cfg.FFmpegPath}, log)
		durationMs, err = source.Open(c.Context, video)
		if err != nil {
			return err
		}
		source.Close()
	}

	plan, err := planner.Plan(durationMs, job.Mode, job.Params, planner.NewRand(job.Seed))
	if err != nil {
		return err
	}

	w := c.App.Writer
	for i, ts := range plan.Timestamps {
		fmt.Fprintf(w, "%d\t%d\t%s\n", i, ts, framewriter.FormatTimestamp(ts))
	}
	log.Info("Planned %d captures (%s mode)", plan.Len(), plan.Mode.String())
	return nil
}
