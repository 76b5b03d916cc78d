package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/vidsnap/pkg/adapters/imagecodec"
	"github.com/user/vidsnap/pkg/adapters/osfilesystem"
	"github.com/user/vidsnap/pkg/adapters/smartsource"
	"github.com/user/vidsnap/pkg/config"
	"github.com/user/vidsnap/pkg/exporter"
	"github.com/user/vidsnap/pkg/framewriter"
	"github.com/user/vidsnap/pkg/pipeline"
	"github.com/user/vidsnap/pkg/report"
)

func exportCommand() *cli.Command {
	flags := append(settingsFlags(),
		&cli.StringFlag{Name: "report", Aliases: []string{"r"}, Usage: l10n.T("Write a Markdown report to this path")},
		&cli.BoolFlag{Name: "save", Usage: l10n.T("Persist the effective settings after a successful export")},
	)

	return &cli.Command{
		Name:      "export",
		Usage:     l10n.T("Capture screenshots across the whole video"),
		ArgsUsage: "VIDEO",
		Flags:     flags,
		Action:    runExport,
	}
}

func runExport(c *cli.Context) error {
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

	backend, err := smartsource.ParseBackend(cfg.Backend)
	if err != nil {
		return err
	}
	source := smartsource.New(smartsource.Options{Backend: backend, FFmpegPath: cfg.FFmpegPath}, log)
	fs := osfilesystem.New()
	writer := framewriter.New(fs, imagecodec.New(), log)
	ctrl := exporter.New(source, writer, fs, log)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, cancelling export...")
			ctrl.Cancel()
		case <-ctrl.Done():
		}
	}()

	progress := newProgressReporter(log)
	cb := exporter.Callbacks{OnProgress: progress.update}
	if err := ctrl.Start(c.Context, job, cb); err != nil {
		return err
	}
	result := ctrl.Wait()

	if path := c.String("report"); path != "" {
		summary := report.NewBuilder().
			WithVideo(job.VideoPath, result.DurationMs, string(source.Backend())).
			WithJob(job).
			WithResult(result).
			Build()
		if err := report.NewWriter(fs, report.NewMarkdownFormatter()).Write(path, summary); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		log.Info("Report saved to %s", path)
	}

	switch result.State {
	case pipeline.StateFailed:
		return result.Err
	case pipeline.StateCancelled:
		return cli.Exit("", 130)
	}

	log.Info("Output saved to %s", framewriter.ProjectDir(job))
	if c.Bool("save") {
		path := settingsPath(c)
		if err := config.SaveToFile(path, cfg); err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
		log.Info("Settings saved to %s", path)
	}
	return nil
}
