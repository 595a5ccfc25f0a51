package summary

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestSummarize_SuccessWithStats(t *testing.T) {
	path := writeTranscript(t,
		`{"type":"user","message":{"content":"fix the login bug"},"timestamp":"2025-01-05T10:00:00Z"}`,
		`{"type":"tool_use","tool_name":"Edit","tool_input":{"file_path":"/a/b.py"}}`,
		`{"type":"assistant","message":{"content":"The bug is gone."},"timestamp":"2025-01-05T10:00:10Z"}`,
	)

	res := Summarize(path)
	if res.Status != StatusSuccess {
		t.Fatalf("status = %s, want success", res.Status)
	}
	if res.Query != "fix the login bug" {
		t.Fatalf("query = %q", res.Query)
	}
	if !strings.Contains(res.Stats, "改1文件") {
		t.Fatalf("stats missing edit phrase: %q", res.Stats)
	}
	if !strings.Contains(res.Stats, "耗时10秒") {
		t.Fatalf("stats missing duration: %q", res.Stats)
	}
}

func TestSummarize_Error(t *testing.T) {
	path := writeTranscript(t,
		`{"type":"user","message":{"content":"deploy the service"},"timestamp":"2025-01-05T10:00:00Z"}`,
		`{"type":"assistant","message":{"content":"API Error: 403 Forbidden"},"timestamp":"2025-01-05T10:00:08Z"}`,
	)

	res := Summarize(path)
	if res.Status != StatusError {
		t.Fatalf("status = %s, want error", res.Status)
	}
	if res.Query != "deploy the service" {
		t.Fatalf("query = %q", res.Query)
	}
	if !strings.Contains(res.Stats, "API Error: 403 Forbidden") {
		t.Fatalf("stats missing captured message: %q", res.Stats)
	}
}

func TestSummarize_ErrorWithoutMessageUsesGenericText(t *testing.T) {
	path := writeTranscript(t,
		`{"type":"assistant","message":{"content":[]},"isApiErrorMessage":true}`,
	)

	res := Summarize(path)
	if res.Status != StatusError {
		t.Fatalf("status = %s, want error", res.Status)
	}
	if res.Query != failedQuery {
		t.Fatalf("query = %q, want %q", res.Query, failedQuery)
	}
	if res.Stats != genericErrText {
		t.Fatalf("stats = %q, want %q", res.Stats, genericErrText)
	}
}

func TestSummarize_ActionNeeded(t *testing.T) {
	path := writeTranscript(t,
		`{"type":"user","message":{"content":"set up the project"}}`,
		`{"type":"assistant","message":{"content":"please run npm install to continue"}}`,
	)

	res := Summarize(path)
	if res.Status != StatusActionNeeded {
		t.Fatalf("status = %s, want action_needed", res.Status)
	}
	if res.Query != "set up the project" {
		t.Fatalf("query = %q", res.Query)
	}
	if res.Stats != "" {
		t.Fatalf("stats should be empty for action_needed, got %q", res.Stats)
	}
}

func TestSummarize_ActionNeededFallbackQuery(t *testing.T) {
	path := writeTranscript(t,
		`{"type":"assistant","message":{"content":"waiting for your approval"}}`,
	)

	res := Summarize(path)
	if res.Status != StatusActionNeeded {
		t.Fatalf("status = %s, want action_needed", res.Status)
	}
	if res.Query != actionQuery {
		t.Fatalf("query = %q, want %q", res.Query, actionQuery)
	}
}

func TestSummarize_ControlOnlyUserInput(t *testing.T) {
	path := writeTranscript(t,
		`{"type":"user","message":{"content":"continue"}}`,
		`{"type":"assistant","message":{"content":"carrying on as planned"}}`,
	)

	res := Summarize(path)
	if res.Status != StatusSuccess {
		t.Fatalf("status = %s, want success", res.Status)
	}
	if res.Query != fallbackQuery {
		t.Fatalf("query = %q, want fallback %q", res.Query, fallbackQuery)
	}
}

func TestSummarize_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.jsonl")

	res := Summarize(path)
	if got := res.Line(); got != "success|任务完成|" {
		t.Fatalf("fallback line = %q", got)
	}
}

func TestSummarize_UnparseableFile(t *testing.T) {
	path := writeTranscript(t,
		`garbage`,
		`{truncated`,
	)

	res := Summarize(path)
	if got := res.Line(); got != "success|任务完成|" {
		t.Fatalf("line = %q, want fallback", got)
	}
}

func TestBuild_QueryReTruncatedForDisplay(t *testing.T) {
	long := strings.Repeat("x", 120)
	path := writeTranscript(t,
		`{"type":"user","message":{"content":"` + long + `"}}`,
	)

	res := Summarize(path)
	if n := len([]rune(res.Query)); n != 60 {
		t.Fatalf("display query length = %d, want 60", n)
	}
	if !strings.HasSuffix(res.Query, "...") {
		t.Fatalf("display query missing ellipsis: %q", res.Query)
	}
}

func TestBuildStats_OmitsZeroParts(t *testing.T) {
	path := writeTranscript(t,
		`{"type":"user","message":{"content":"inspect the codebase"}}`,
		`{"type":"tool_use","tool_name":"Read","tool_input":{"file_path":"/a.go"}}`,
		`{"type":"tool_use","tool_name":"Read","tool_input":{"file_path":"/b.go"}}`,
	)

	res := Summarize(path)
	if res.Stats != "读2文件" {
		t.Fatalf("stats = %q, want only the read phrase", res.Stats)
	}
}

func TestResult_Line(t *testing.T) {
	res := Result{Status: StatusError, Query: "部署服务", Stats: "API Error: 403"}
	if got := res.Line(); got != "error|部署服务|API Error: 403" {
		t.Fatalf("Line = %q", got)
	}

	empty := Result{Status: StatusSuccess}
	if got := empty.Line(); got != "success||" {
		t.Fatalf("Line = %q", got)
	}
}
