package main

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/samber/oops"
	"github.com/urfave/cli/v3"

	"github.com/g5becks/marq/internal/markup"
)

func newEscapeCommand() *cli.Command {
	return &cli.Command{
		Name:      "escape",
		Usage:     "Escape markup special characters in text",
		ArgsUsage: "[text...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "value",
				Usage: "Also escape double quotes, for attribute values",
			},
		},
		Action: escapeAction,
	}
}

func newUnescapeCommand() *cli.Command {
	return &cli.Command{
		Name:      "unescape",
		Usage:     "Resolve entity and numeric character references in text",
		ArgsUsage: "[text...]",
		Action:    unescapeAction,
	}
}

func escapeAction(_ context.Context, cmd *cli.Command) error {
	text, err := codecInput(cmd)
	if err != nil {
		return err
	}

	if cmd.Bool("value") {
		_, _ = os.Stdout.WriteString(markup.EscapeValue(text) + "\n")
		return nil
	}

	_, _ = os.Stdout.WriteString(markup.Escape(text) + "\n")
	return nil
}

func unescapeAction(_ context.Context, cmd *cli.Command) error {
	text, err := codecInput(cmd)
	if err != nil {
		return err
	}

	_, _ = os.Stdout.WriteString(markup.Unescape(text) + "\n")
	return nil
}

// codecInput joins the command arguments, or reads stdin when no arguments
// are given.
func codecInput(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() > 0 {
		return strings.Join(cmd.Args().Slice(), " "), nil
	}

	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", oops.
			Code("FILE_READ_ERROR").
			Wrapf(err, "reading stdin")
	}

	return strings.TrimRight(string(content), "\n"), nil
}
