package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/oops"
	"github.com/urfave/cli/v3"

	"github.com/g5becks/marq/internal/convert"
	"github.com/g5becks/marq/internal/scan"
)

func newConvertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert Markdown files to markup documents",
		ArgsUsage: "<file...>",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Write each output next to its input with an .xml extension",
			},
		},
		Action: convertAction,
	}
}

func convertAction(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		return oops.
			Code("INVALID_ARGS").
			Hint("Usage: marq convert <file...>").
			Errorf("expected at least 1 argument")
	}

	write := cmd.Bool("write")

	for _, path := range cmd.Args().Slice() {
		content, err := os.ReadFile(path)
		if err != nil {
			return oops.
				Code("FILE_READ_ERROR").
				With("path", path).
				Wrapf(err, "reading file")
		}

		if scan.IsBinary(content) {
			return oops.
				Code("FILE_UNSUPPORTED").
				With("path", path).
				Errorf("file %q looks binary", path)
		}

		doc, err := convert.FromMarkdown(content)
		if err != nil {
			return oops.With("path", path).Wrapf(err, "converting %s", path)
		}

		output := doc.String()
		if !write {
			_, _ = os.Stdout.WriteString(output)
			continue
		}

		outPath := outputPath(path)
		if err := os.WriteFile(outPath, []byte(output), 0o644); err != nil {
			return oops.
				Code("FILE_WRITE_ERROR").
				With("path", outPath).
				Wrapf(err, "writing %s", outPath)
		}
	}

	return nil
}

func outputPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".xml"
}
