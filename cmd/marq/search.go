package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/oops"
	"github.com/urfave/cli/v3"

	"github.com/g5becks/marq/internal/markup"
	"github.com/g5becks/marq/internal/scan"
	"github.com/g5becks/marq/internal/search"
)

const (
	formatJSON = "json"
	formatCSV  = "csv"

	snippetLength = 60
)

func newSearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Find elements in markup files by name, attribute, or text",
		ArgsUsage: "[file|glob...]",
		Flags: []cli.Flag{
			configFlag(),
			excludeFlag(),
			&cli.StringFlag{
				Name:  "name",
				Usage: "Match elements with this name",
			},
			&cli.StringFlag{
				Name:  "attr",
				Usage: "Match elements carrying this attribute key",
			},
			&cli.StringFlag{
				Name:  "text",
				Usage: "Match elements whose direct text contains this substring",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output as JSON",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: table, json, csv",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Max results (0 = unlimited)",
			},
		},
		Action: searchAction,
	}
}

func searchAction(_ context.Context, cmd *cli.Command) error {
	opts := search.Options{
		Name:  cmd.String("name"),
		Attr:  cmd.String("attr"),
		Text:  cmd.String("text"),
		Limit: cmd.Int("limit"),
	}

	if opts.Name == "" && opts.Attr == "" && opts.Text == "" {
		return oops.
			Code("INVALID_ARGS").
			Hint("Pass at least one of --name, --attr, or --text").
			Errorf("no search criteria given")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	files, err := collectFiles(cmd, cfg)
	if err != nil {
		return err
	}

	var results []search.Result
	for _, path := range files {
		if opts.Limit > 0 && len(results) >= opts.Limit {
			break
		}

		content, err := scan.ReadDocument(path)
		if err != nil {
			return err
		}

		doc, err := markup.Parse(content)
		if err != nil {
			return oops.With("path", path).Wrapf(err, "parsing %s", path)
		}

		remaining := opts
		if opts.Limit > 0 {
			remaining.Limit = opts.Limit - len(results)
		}
		results = append(results, search.Document(path, doc, remaining)...)
	}

	format := cmd.String("format")
	if cmd.Bool("json") {
		format = formatJSON
	}

	switch format {
	case formatJSON:
		return outputResultsJSON(results)
	case formatCSV:
		return outputResultsCSV(results)
	default:
		return outputResultsTable(results)
	}
}

func outputResultsJSON(results []search.Result) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return oops.Code("JSON_ERROR").Wrapf(err, "encoding results")
	}
	return nil
}

func outputResultsCSV(results []search.Result) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"path", "element", "depth", "attrs", "snippet"}); err != nil {
		return oops.Code("CSV_ERROR").Wrapf(err, "writing CSV header")
	}

	for _, r := range results {
		if err := w.Write([]string{
			r.Path,
			r.Element,
			strconv.Itoa(r.Depth),
			formatAttrsField(r.Attrs),
			r.Snippet,
		}); err != nil {
			return oops.Code("CSV_ERROR").Wrapf(err, "writing CSV row")
		}
	}

	return nil
}

func outputResultsTable(results []search.Result) error {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"PATH", "ELEMENT", "DEPTH", "ATTRS", "SNIPPET"})

	for _, r := range results {
		t.AppendRow(table.Row{
			r.Path,
			r.Element,
			r.Depth,
			formatAttrsField(r.Attrs),
			truncate(r.Snippet, snippetLength),
		})
	}

	t.Render()
	return nil
}

func formatAttrsField(attrs map[string]string) string {
	if len(attrs) == 0 {
		return ""
	}

	keys := slices.Sorted(maps.Keys(attrs))

	parts := make([]string, len(keys))
	for i, key := range keys {
		parts[i] = key + "=" + attrs[key]
	}
	return strings.Join(parts, " ")
}

func truncate(text string, maxLen int) string {
	if maxLen <= 0 || len(text) <= maxLen {
		return text
	}
	const ellipsis = "..."
	if maxLen <= len(ellipsis) {
		return ellipsis
	}
	return text[:maxLen-len(ellipsis)] + ellipsis
}
