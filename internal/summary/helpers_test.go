package summary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskbell/internal/transcript"
)

func writeTranscript(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.jsonl")
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func readRecords(t *testing.T, lines ...string) []transcript.Record {
	t.Helper()
	tr, err := transcript.Read(writeTranscript(t, lines...))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return tr.Records
}
