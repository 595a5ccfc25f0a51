// Package main provides the taskbell CLI, which turns a coding-assistant
// session transcript into a one-line notification summary.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"taskbell/internal/format"
	"taskbell/internal/hook"
	"taskbell/internal/summary"
	"taskbell/internal/transcript"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "taskbell: %v\n", err)
		os.Exit(1)
	}
}

const rootLong = `taskbell reads a session transcript (JSONL) and prints a single line
"status|query|stats" suitable for a desktop or chat notification.

The transcript path is taken from the first argument, or, when invoked as
a session hook with no arguments, from the "transcript_path" field of the
JSON payload on stdin. The command always exits 0 and always prints
exactly one line; an unreadable transcript produces the fixed fallback.`

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "taskbell [transcript]",
		Short:   "Extract a notification summary from a coding-assistant session transcript",
		Long:    rootLong,
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			path := resolveTranscriptPath(args, cmd.InOrStdin())
			result := summary.Summarize(path)
			fmt.Fprintln(cmd.OutOrStdout(), result.Line()) //nolint:errcheck
		},
	}

	cmd.AddCommand(newInspectCmd())
	return cmd
}

// resolveTranscriptPath picks the transcript path from the argument list or
// the hook payload on stdin. An empty result makes the summary step fall
// back; path resolution never fails the command.
func resolveTranscriptPath(args []string, stdin io.Reader) string {
	if len(args) > 0 {
		return args[0]
	}
	input, err := hook.Read(stdin)
	if err != nil {
		return ""
	}
	return input.TranscriptPath
}

func newInspectCmd() *cobra.Command {
	var (
		formatFlag string
		maxWidth   int
	)

	cmd := &cobra.Command{
		Use:   "inspect <transcript>",
		Short: "Show the full extraction detail for a transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := transcript.Read(args[0])
			if err != nil {
				return err
			}

			result := summary.Build(tr, summary.DefaultRules)
			report := format.Report{
				Path:          args[0],
				Status:        string(result.Status),
				Query:         result.Query,
				Stats:         result.Stats,
				MessageCount:  len(tr.Records),
				Duration:      summary.Duration(tr.Records),
				ToolsUsed:     tr.ToolsUsed,
				FilesModified: tr.FilesModified,
				Commands:      tr.Commands,
			}

			width := maxWidth
			if width == 0 {
				width = valueWidth(cmd.OutOrStdout())
			}
			return format.WriteReport(cmd.OutOrStdout(), report, width, formatFlag)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&formatFlag, "format", "table", "output format: table, plain, or json")
	flags.IntVar(&maxWidth, "width", 0, "maximum value column width (0 means auto-detect)")

	return cmd
}

// valueWidth derives the value column width from the terminal, leaving room
// for the field column and table chrome. Non-TTY output gets a fixed width.
func valueWidth(out io.Writer) int {
	const defaultWidth = 80
	file, ok := out.(*os.File)
	if !ok || !isTerminal(file.Fd()) {
		return defaultWidth
	}
	cols, _, err := term.GetSize(int(file.Fd()))
	if err != nil || cols <= 20 {
		return defaultWidth
	}
	return cols - 20
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
