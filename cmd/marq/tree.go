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

func newTreeCommand() *cli.Command {
	return &cli.Command{
		Name:      "tree",
		Usage:     "Print the node tree of markup files",
		ArgsUsage: "[file|glob...]",
		Flags: []cli.Flag{
			configFlag(),
			excludeFlag(),
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Action: treeAction,
	}
}

func treeAction(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	files, err := collectFiles(cmd, cfg)
	if err != nil {
		return err
	}

	opts := ui.TreeOptions{NoColor: cmd.Bool("no-color")}

	for _, path := range files {
		content, err := scan.ReadDocument(path)
		if err != nil {
			return err
		}

		doc, err := markup.Parse(content)
		if err != nil {
			return oops.With("path", path).Wrapf(err, "parsing %s", path)
		}

		if len(files) > 1 {
			_, _ = os.Stdout.WriteString(path + "\n")
		}
		ui.RenderTree(os.Stdout, doc, opts)
	}

	return nil
}
