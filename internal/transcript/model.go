// Package transcript provides types and a reader for coding-assistant
// session transcripts stored as JSONL, one record per line.
package transcript

import (
	"encoding/json"
	"time"
)

// RecordType represents the top-level "type" field values in transcript records.
type RecordType string

const (
	RecordUser       RecordType = "user"
	RecordAssistant  RecordType = "assistant"
	RecordToolUse    RecordType = "tool_use"
	RecordToolResult RecordType = "tool_result"
)

// Record is one decoded line of a transcript. Records are immutable after
// parsing; their order in Transcript.Records is chronological.
type Record struct {
	Type      RecordType
	Timestamp string

	// Tool invocation fields (tool_use / tool_result records).
	ToolName   string
	ToolInput  ToolInput
	ToolOutput json.RawMessage

	// Error markers set by the assistant runtime.
	IsAPIError bool
	ErrorValue json.RawMessage

	message json.RawMessage // nested message.content
	content json.RawMessage // legacy direct content field
}

// ToolInput holds the tool input fields the summary pipeline cares about.
// Unknown fields are ignored.
type ToolInput struct {
	FilePath string `json:"file_path"`
	Path     string `json:"path"`
	Command  string `json:"command"`
}

// Text returns the record's normalized text, preferring the nested
// message.content field over the legacy direct content field.
func (r *Record) Text() string {
	if text := ExtractText(r.message); text != "" {
		return text
	}
	return ExtractText(r.content)
}

// OutputText returns the text of a tool result, falling back to the
// content field when the record carries no tool_output.
func (r *Record) OutputText() string {
	if text := ExtractText(r.ToolOutput); text != "" {
		return text
	}
	return ExtractText(r.content)
}

// HasError reports whether the record carries an explicit error marker:
// either the API error flag or a non-empty error field.
func (r *Record) HasError() bool {
	if r.IsAPIError {
		return true
	}
	switch string(r.ErrorValue) {
	case "", "null", `""`, "{}", "[]", "false":
		return false
	}
	return true
}

// Time parses the record timestamp as an ISO-8601 instant. The second
// return value is false when the timestamp is missing or unparsable.
func (r *Record) Time() (time.Time, bool) {
	if r.Timestamp == "" {
		return time.Time{}, false
	}
	if ts, err := time.Parse(time.RFC3339Nano, r.Timestamp); err == nil {
		return ts, true
	}
	if ts, err := time.Parse(time.RFC3339, r.Timestamp); err == nil {
		return ts, true
	}
	// Zoneless timestamps occasionally show up in older transcripts.
	if ts, err := time.Parse("2006-01-02T15:04:05", r.Timestamp); err == nil {
		return ts, true
	}
	return time.Time{}, false
}
