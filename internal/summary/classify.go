// Package summary classifies session outcomes and assembles the
// notification summary extracted from a transcript.
package summary

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"taskbell/internal/transcript"
)

// Status is the classified outcome of a session.
type Status string

const (
	StatusSuccess      Status = "success"
	StatusError        Status = "error"
	StatusActionNeeded Status = "action_needed"
)

// Ruleset maps classification outcomes to ordered pattern lists. It is
// built once at startup and never mutated; tests may supply a smaller set.
type Ruleset struct {
	Error        []*regexp.Regexp
	ActionNeeded []*regexp.Regexp
}

// DefaultRules matches the error and action-needed phrasings produced by
// the assistant runtime, in both of the transcript's working languages.
var DefaultRules = &Ruleset{
	Error: compileAll(
		`(?i)api error`,
		`(?i)error:`,
		`\b403\b`,
		`\b401\b`,
		`\b500\b`,
		`(?i)failed`,
		`失败`,
		`(?i)forbidden`,
		`(?i)unauthorized`,
		`(?i)timeout`,
		`(?i)connection refused`,
		`/login`,
		`(?i)permission denied`,
	),
	ActionNeeded: compileAll(
		`(?i)please run`,
		`请运行`,
		`需要确认`,
		`(?i)waiting for`,
		`(?i)approve`,
	),
}

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}

// Classify scans records from the last meaningful user turn onward, most
// recent first. An explicit error marker anywhere in that window wins over
// any pattern match; records with no extractable text are skipped. With no
// match the session counts as a success.
func (rs *Ruleset) Classify(records []transcript.Record) Status {
	anchor := 0
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Type != transcript.RecordUser {
			continue
		}
		if utf8.RuneCountInString(strings.TrimSpace(records[i].Text())) > 3 {
			anchor = i
			break
		}
	}

	for i := len(records) - 1; i >= anchor; i-- {
		if records[i].HasError() {
			return StatusError
		}
	}

	for i := len(records) - 1; i >= anchor; i-- {
		rec := &records[i]

		var text string
		switch rec.Type {
		case transcript.RecordToolResult:
			text = rec.OutputText()
		default:
			text = rec.Text()
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		if matchAny(rs.Error, text) != nil {
			return StatusError
		}
		if matchAny(rs.ActionNeeded, text) != nil {
			return StatusActionNeeded
		}
	}
	return StatusSuccess
}

// ErrorMessage scans the last 10 records, most recent first, for assistant
// or tool-result text matching an error pattern and returns the matched
// portion of the line, capped to 80 characters. Empty when nothing matches.
func (rs *Ruleset) ErrorMessage(records []transcript.Record) string {
	start := len(records) - 10
	if start < 0 {
		start = 0
	}
	for i := len(records) - 1; i >= start; i-- {
		rec := &records[i]

		var text string
		switch rec.Type {
		case transcript.RecordAssistant:
			text = rec.Text()
		case transcript.RecordToolResult:
			text = rec.OutputText()
		default:
			continue
		}
		if text == "" {
			continue
		}

		if loc := matchAny(rs.Error, text); loc != nil {
			matched := text[loc[0]:]
			if nl := strings.IndexByte(matched, '\n'); nl >= 0 {
				matched = matched[:nl]
			}
			return clip(strings.TrimSpace(matched), 80)
		}
	}
	return ""
}

// matchAny returns the location of the first pattern that matches text,
// or nil when none does.
func matchAny(patterns []*regexp.Regexp, text string) []int {
	for _, p := range patterns {
		if loc := p.FindStringIndex(text); loc != nil {
			return loc
		}
	}
	return nil
}
