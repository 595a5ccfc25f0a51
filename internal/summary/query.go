package summary

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"taskbell/internal/transcript"
)

// Control acknowledgements carry no task information and are skipped
// during query extraction.
var controlAcks = map[string]struct{}{
	"ok":       {},
	"okay":     {},
	"yes":      {},
	"no":       {},
	"y":        {},
	"n":        {},
	"continue": {},
	"go":       {},
	"next":     {},
	"done":     {},
	"thanks":   {},
	"继续":       {},
	"好的":       {},
	"好":        {},
	"是":        {},
	"是的":       {},
	"行":        {},
	"可以":       {},
	"确认":       {},
	"谢谢":       {},
}

// ExtractQuery returns the most recent meaningful user-authored text as a
// short display string, or empty when no user record passes the filters.
func ExtractQuery(records []transcript.Record) string {
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Type != transcript.RecordUser {
			continue
		}

		text := strings.TrimSpace(records[i].Text())
		if text == "" {
			continue
		}
		if _, ok := controlAcks[strings.ToLower(text)]; ok {
			continue
		}
		if utf8.RuneCountInString(text) < 5 {
			continue
		}
		if isPunctuationOnly(text) {
			continue
		}

		firstLine, _, _ := strings.Cut(text, "\n")
		firstLine = strings.TrimSpace(firstLine)
		if utf8.RuneCountInString(firstLine) > 5 {
			return clip(firstLine, 80)
		}
		return clip(text, 80)
	}
	return ""
}

// isPunctuationOnly reports whether text consists entirely of punctuation,
// symbols, and whitespace ("...", "???", "！！！" and the like).
func isPunctuationOnly(text string) bool {
	for _, r := range text {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// clip truncates text to at most maxLen runes, replacing the tail with
// "..." when truncation happens.
func clip(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
