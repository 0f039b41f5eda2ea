package main

import (
	"context"
	"os"

	"github.com/samber/oops"
	"github.com/urfave/cli/v3"

	"github.com/g5becks/marq/internal/batch"
	"github.com/g5becks/marq/internal/markup"
	"github.com/g5becks/marq/internal/scan"
)

func newFmtCommand() *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "Parse markup files and reserialize them in canonical form",
		ArgsUsage: "[file|glob...]",
		Flags: []cli.Flag{
			configFlag(),
			excludeFlag(),
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Rewrite files in place instead of printing",
			},
			&cli.IntFlag{
				Name:    "parallel",
				Aliases: []string{"p"},
				Usage:   "Maximum parallel file workers (0 = use config default)",
			},
		},
		Action: fmtAction,
	}
}

func fmtAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	files, err := collectFiles(cmd, cfg)
	if err != nil {
		return err
	}

	parallel := cfg.Parallel
	if cmd.IsSet("parallel") {
		parallel = cmd.Int("parallel")
	}

	write := cmd.Bool("write")

	outcomes := batch.Map(ctx, files, parallel, func(_ context.Context, path string) (string, error) {
		return formatFile(path, write)
	})

	for _, outcome := range outcomes {
		if outcome.Err != nil {
			continue
		}
		if !write {
			_, _ = os.Stdout.WriteString(outcome.Output)
		}
	}

	return batch.FirstErr(outcomes)
}

func formatFile(path string, write bool) (string, error) {
	content, err := scan.ReadDocument(path)
	if err != nil {
		return "", err
	}

	doc, err := markup.Parse(content)
	if err != nil {
		return "", oops.
			With("path", path).
			Wrapf(err, "parsing %s", path)
	}

	formatted := doc.String()
	if !write {
		return formatted, nil
	}

	if formatted == content {
		return "", nil
	}

	if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
		return "", oops.
			Code("FILE_WRITE_ERROR").
			With("path", path).
			Wrapf(err, "writing %s", path)
	}

	return "", nil
}
