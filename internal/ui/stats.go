// Package ui renders command output as tables or JSON.
package ui

import (
	"encoding/json"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/oops"

	"github.com/g5becks/marq/internal/markup"
)

// DocStats summarizes the node population of one parsed document.
type DocStats struct {
	Path         string `json:"path"`
	Elements     int    `json:"elements"`
	TextNodes    int    `json:"text_nodes"`
	Comments     int    `json:"comments"`
	CDataBlocks  int    `json:"cdata_blocks"`
	Declarations int    `json:"declarations"`
	Metadata     int    `json:"metadata"`
	MaxDepth     int    `json:"max_depth"`
	Bytes        int    `json:"bytes"`
}

// Collect walks a document and counts its nodes by kind.
func Collect(path string, doc *markup.Document) DocStats {
	stats := DocStats{Path: path, Bytes: len(doc.String())}
	collectInto(&stats, doc.Children(), 1)
	return stats
}

func collectInto(stats *DocStats, nodes []markup.Node, depth int) {
	for _, node := range nodes {
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}

		switch n := node.(type) {
		case *markup.Element:
			stats.Elements++
			collectInto(stats, n.Children(), depth+1)
		case *markup.Text:
			stats.TextNodes++
		case *markup.Comment:
			stats.Comments++
		case *markup.CData:
			stats.CDataBlocks++
		case *markup.Declaration:
			stats.Declarations++
		case *markup.Metadata:
			stats.Metadata++
		}
	}
}

// StatsOptions controls stats rendering.
type StatsOptions struct {
	JSON bool
}

// RenderStats writes per-document stats as a table or JSON.
func RenderStats(w io.Writer, stats []DocStats, opts StatsOptions) error {
	if opts.JSON {
		return renderStatsJSON(w, stats)
	}

	renderStatsTable(w, stats)
	return nil
}

func renderStatsJSON(w io.Writer, stats []DocStats) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(stats); err != nil {
		return oops.
			Code("JSON_ERROR").
			Wrapf(err, "encoding stats")
	}

	return nil
}

func renderStatsTable(w io.Writer, stats []DocStats) {
	writer := table.NewWriter()
	writer.SetOutputMirror(w)
	writer.SetStyle(table.StyleRounded)

	writer.AppendHeader(table.Row{
		"FILE", "ELEMENTS", "TEXT", "COMMENTS", "CDATA", "DECL", "META", "DEPTH", "BYTES",
	})

	for _, s := range stats {
		writer.AppendRow(table.Row{
			s.Path,
			s.Elements,
			s.TextNodes,
			s.Comments,
			s.CDataBlocks,
			s.Declarations,
			s.Metadata,
			s.MaxDepth,
			s.Bytes,
		})
	}

	writer.Render()
}
