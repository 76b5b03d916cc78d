package main

import (
	"fmt"
	"os"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/user/vidsnap/pkg/config"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: l10n.T("Manage the settings file"),
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: l10n.T("Write the default settings file"),
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("Settings file (default: user config directory)")},
					&cli.BoolFlag{Name: "force", Usage: l10n.T("Overwrite an existing file")},
				},
				Action: runConfigInit,
			},
			{
				Name:   "show",
				Usage:  l10n.T("Print the effective settings"),
				Flags:  settingsFlags(),
				Action: runConfigShow,
			},
		},
	}
}

func runConfigInit(c *cli.Context) error {
	path := settingsPath(c)
	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return cli.Exit(l10n.F("%s already exists, use --force to overwrite", path), 1)
	}
	if err := config.SaveToFile(path, config.Defaults()); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, l10n.F("Settings saved to %s", path))
	return nil
}

func runConfigShow(c *cli.Context) error {
	cfg, err := loadSettings(c)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Fprint(c.App.Writer, string(data))
	return nil
}
