// Package format renders session inspection reports.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-runewidth"
)

// Report is the inspection view of one transcript: the summary tuple plus
// the aggregates collected while reading.
type Report struct {
	Path          string         `json:"path"`
	Status        string         `json:"status"`
	Query         string         `json:"query"`
	Stats         string         `json:"stats"`
	MessageCount  int            `json:"message_count"`
	Duration      string         `json:"duration,omitempty"`
	ToolsUsed     map[string]int `json:"tools_used,omitempty"`
	FilesModified []string       `json:"files_modified,omitempty"`
	Commands      []string       `json:"commands,omitempty"`
}

// WriteReport writes the report to w in the requested format. Values wider
// than maxWidth display columns are clipped.
func WriteReport(w io.Writer, rep Report, maxWidth int, format string) error {
	switch strings.ToLower(format) {
	case "", "table":
		return writeReportTable(w, rep, maxWidth)
	case "plain":
		return writeReportPlain(w, rep, maxWidth)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeReportTable(w io.Writer, rep Report, maxWidth int) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateHeader = true
	tw.Style().Options.DrawBorder = true

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignCenter, WidthMax: maxWidth},
	})

	tw.AppendHeader(table.Row{"Field", "Value"})
	for _, row := range reportRows(rep, maxWidth) {
		tw.AppendRow(table.Row{row[0], row[1]})
	}

	_ = tw.Render()
	return nil
}

func writeReportPlain(w io.Writer, rep Report, maxWidth int) error {
	for _, row := range reportRows(rep, maxWidth) {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", row[0], row[1]); err != nil {
			return err
		}
	}
	return nil
}

func reportRows(rep Report, maxWidth int) [][2]string {
	rows := [][2]string{
		{"Path", clipWidth(rep.Path, maxWidth)},
		{"Status", rep.Status},
		{"Query", clipWidth(rep.Query, maxWidth)},
		{"Stats", clipWidth(rep.Stats, maxWidth)},
		{"Messages", fmt.Sprintf("%d", rep.MessageCount)},
	}
	if rep.Duration != "" {
		rows = append(rows, [2]string{"Duration", rep.Duration})
	}
	for _, tool := range sortedTools(rep.ToolsUsed) {
		rows = append(rows, [2]string{"Tool " + tool, fmt.Sprintf("%d", rep.ToolsUsed[tool])})
	}
	if len(rep.FilesModified) > 0 {
		rows = append(rows, [2]string{"Files", clipWidth(strings.Join(rep.FilesModified, ", "), maxWidth)})
	}
	for _, cmd := range rep.Commands {
		rows = append(rows, [2]string{"Command", clipWidth(escapeNewlines(cmd), maxWidth)})
	}
	return rows
}

// sortedTools orders tool names by invocation count, busiest first,
// breaking ties by name.
func sortedTools(tools map[string]int) []string {
	names := make([]string, 0, len(tools))
	for name := range tools {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if tools[names[i]] != tools[names[j]] {
			return tools[names[i]] > tools[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

func clipWidth(s string, maxWidth int) string {
	if maxWidth <= 0 || runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "…")
}

func escapeNewlines(text string) string {
	return strings.ReplaceAll(text, "\n", "\\n")
}
