package transcript

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	maxFilesShown    = 5
	maxCommandsShown = 3
	commandPrefixLen = 50
)

// Tool names whose invocations count as file edits.
var editToolNames = map[string]struct{}{
	"Edit":  {},
	"Write": {},
}

// Transcript holds the full ordered record sequence of one session plus
// aggregate tool-usage counts collected while reading. ToolsUsed always
// reflects true totals; FilesModified and Commands are capped for display.
type Transcript struct {
	Records       []Record
	ToolsUsed     map[string]int
	FilesModified []string
	Commands      []string
}

// Read loads a transcript file. Lines that fail to decode are skipped;
// only failure to open or scan the file itself is reported as an error.
func Read(path string) (*Transcript, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer file.Close() //nolint:errcheck

	tr := &Transcript{ToolsUsed: make(map[string]int)}
	seenFiles := make(map[string]struct{})
	var files, commands []string

	scanner := newScanner(file)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		rec, err := parseRecord(line)
		if err != nil {
			continue // Skip invalid lines
		}
		tr.Records = append(tr.Records, rec)

		if rec.Type != RecordToolUse {
			continue
		}

		name := rec.ToolName
		if name == "" {
			name = "unknown"
		}
		tr.ToolsUsed[name]++

		if _, ok := editToolNames[rec.ToolName]; ok {
			target := rec.ToolInput.FilePath
			if target == "" {
				target = rec.ToolInput.Path
			}
			if target != "" {
				base := filepath.Base(target)
				if _, ok := seenFiles[base]; !ok {
					seenFiles[base] = struct{}{}
					files = append(files, base)
				}
			}
		}

		if rec.ToolName == "Bash" && rec.ToolInput.Command != "" {
			commands = append(commands, clipPrefix(rec.ToolInput.Command, commandPrefixLen))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan transcript: %w", err)
	}

	if len(files) > maxFilesShown {
		files = files[:maxFilesShown]
	}
	if len(commands) > maxCommandsShown {
		commands = commands[:maxCommandsShown]
	}
	tr.FilesModified = files
	tr.Commands = commands

	return tr, nil
}

func newScanner(file *os.File) *bufio.Scanner {
	scanner := bufio.NewScanner(file)
	// Allow large payloads
	const maxCapacity = 8 * 1024 * 1024
	buf := make([]byte, 1024)
	scanner.Buffer(buf, maxCapacity)
	return scanner
}

type rawRecord struct {
	Type              string          `json:"type"`
	Timestamp         string          `json:"timestamp"`
	Message           json.RawMessage `json:"message"`
	Content           json.RawMessage `json:"content"`
	ToolName          string          `json:"tool_name"`
	ToolInput         json.RawMessage `json:"tool_input"`
	ToolOutput        json.RawMessage `json:"tool_output"`
	IsAPIErrorMessage bool            `json:"isApiErrorMessage"`
	Error             json.RawMessage `json:"error"`
}

type messagePayload struct {
	Content json.RawMessage `json:"content"`
}

func parseRecord(raw []byte) (Record, error) {
	var entry rawRecord
	if err := json.Unmarshal(raw, &entry); err != nil {
		return Record{}, fmt.Errorf("unmarshal record: %w", err)
	}

	rec := Record{
		Type:       RecordType(entry.Type),
		Timestamp:  entry.Timestamp,
		ToolName:   entry.ToolName,
		ToolOutput: entry.ToolOutput,
		IsAPIError: entry.IsAPIErrorMessage,
		ErrorValue: entry.Error,
		content:    entry.Content,
	}

	if len(entry.Message) > 0 {
		var msg messagePayload
		// Message may be a bare string in older transcripts; keep the
		// legacy content field as the fallback in that case.
		if err := json.Unmarshal(entry.Message, &msg); err == nil {
			rec.message = msg.Content
		}
	}

	if len(entry.ToolInput) > 0 {
		// Tolerate non-object tool_input; the zero value is fine.
		_ = json.Unmarshal(entry.ToolInput, &rec.ToolInput)
	}

	return rec, nil
}

func clipPrefix(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}
