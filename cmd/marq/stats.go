package main

import (
	"context"
	"os"

	"github.com/samber/oops"
	"github.com/urfave/cli/v3"

	"github.com/g5becks/marq/internal/markup"
	"github.com/g5becks/marq/internal/scan"
	"github.com/g5becks/marq/internal/ui"
)

func newStatsCommand() *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "Show node counts and depth for markup files",
		ArgsUsage: "[file|glob...]",
		Flags: []cli.Flag{
			configFlag(),
			excludeFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output as JSON",
			},
		},
		Action: statsAction,
	}
}

func statsAction(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	files, err := collectFiles(cmd, cfg)
	if err != nil {
		return err
	}

	stats := make([]ui.DocStats, 0, len(files))
	for _, path := range files {
		content, err := scan.ReadDocument(path)
		if err != nil {
			return err
		}

		doc, err := markup.Parse(content)
		if err != nil {
			return oops.With("path", path).Wrapf(err, "parsing %s", path)
		}

		stats = append(stats, ui.Collect(path, doc))
	}

	return ui.RenderStats(os.Stdout, stats, ui.StatsOptions{JSON: cmd.Bool("json")})
}
