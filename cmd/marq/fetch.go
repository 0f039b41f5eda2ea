package main

import (
	"context"
	"os"
	"time"

	"github.com/samber/oops"
	"github.com/urfave/cli/v3"

	"github.com/g5becks/marq/internal/markup"
	"github.com/g5becks/marq/internal/source"
)

func newFetchCommand() *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Download a remote markup document and print it reserialized",
		ArgsUsage: "<url>",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Skip the cache and re-download",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Write output to a file instead of stdout",
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "Print the body as fetched, without parsing",
			},
		},
		Action: fetchAction,
	}
}

func fetchAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return oops.
			Code("INVALID_ARGS").
			Hint("Usage: marq fetch <url>").
			Errorf("expected 1 argument, got %d", cmd.Args().Len())
	}

	url := cmd.Args().First()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	fetcher := source.NewFetcher(cfg.Fetch.CacheDir, time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second)
	defer func() { _ = fetcher.Close() }()

	result, err := fetcher.Fetch(ctx, url, source.Options{Force: cmd.Bool("force")})
	if err != nil {
		return err
	}

	output := result.Body
	if !cmd.Bool("raw") {
		doc, err := markup.Parse(result.Body)
		if err != nil {
			return oops.With("url", url).Wrapf(err, "parsing fetched document")
		}
		output = doc.String()
	}

	if outPath := cmd.String("out"); outPath != "" {
		if err := os.WriteFile(outPath, []byte(output), 0o644); err != nil {
			return oops.
				Code("FILE_WRITE_ERROR").
				With("path", outPath).
				Wrapf(err, "writing %s", outPath)
		}
		return nil
	}

	_, _ = os.Stdout.WriteString(output)
	return nil
}
