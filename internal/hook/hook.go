// Package hook decodes the JSON payload the orchestrator writes to stdin
// when invoking the binary as a session hook.
package hook

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Input is the hook payload. Only TranscriptPath is consumed; the other
// fields are carried for completeness.
type Input struct {
	SessionID      string `json:"session_id"`
	TranscriptPath string `json:"transcript_path"`
	CWD            string `json:"cwd"`
	HookEventName  string `json:"hook_event_name"`
}

// Read decodes a hook payload from r.
func Read(r io.Reader) (*Input, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read hook input: %w", err)
	}

	var input Input
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("parse hook input: %w", err)
	}
	if input.TranscriptPath == "" {
		return nil, errors.New("transcript_path is required")
	}

	return &input, nil
}
