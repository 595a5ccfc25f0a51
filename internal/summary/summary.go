package summary

import (
	"fmt"
	"strings"

	"taskbell/internal/transcript"
)

// Fixed fallback strings used when extraction yields nothing.
const (
	fallbackQuery  = "任务完成"
	failedQuery    = "任务失败"
	actionQuery    = "需要用户操作"
	genericErrText = "执行出错"
)

const statsSeparator = " | "

// Result is the final summary tuple. Query and Stats may be empty.
type Result struct {
	Status Status
	Query  string
	Stats  string
}

// Line renders the result as the single output line consumed by the
// notification hook.
func (r Result) Line() string {
	return fmt.Sprintf("%s|%s|%s", r.Status, r.Query, r.Stats)
}

// Summarize reads the transcript at path and produces a summary using the
// default rules. A transcript that cannot be read yields the fixed success
// fallback; a missing transcript most likely means nothing happened, not
// that the task failed.
func Summarize(path string) Result {
	tr, err := transcript.Read(path)
	if err != nil {
		return Result{Status: StatusSuccess, Query: fallbackQuery}
	}
	return Build(tr, DefaultRules)
}

// Build assembles the summary for an already-read transcript.
func Build(tr *transcript.Transcript, rules *Ruleset) Result {
	status := rules.Classify(tr.Records)
	query := clip(ExtractQuery(tr.Records), 60)

	switch status {
	case StatusError:
		msg := rules.ErrorMessage(tr.Records)
		if msg == "" {
			msg = genericErrText
		}
		if query == "" {
			query = failedQuery
		}
		return Result{Status: StatusError, Query: query, Stats: msg}

	case StatusActionNeeded:
		if query == "" {
			query = actionQuery
		}
		return Result{Status: StatusActionNeeded, Query: query}
	}

	if query == "" {
		query = fallbackQuery
	}
	return Result{Status: StatusSuccess, Query: query, Stats: buildStats(tr)}
}

// buildStats joins the tool-usage phrases and the session duration,
// omitting every part whose source value is zero or empty.
func buildStats(tr *transcript.Transcript) string {
	var parts []string

	if edits := tr.ToolsUsed["Edit"] + tr.ToolsUsed["Write"]; edits > 0 {
		parts = append(parts, fmt.Sprintf("改%d文件", edits))
	}
	if execs := tr.ToolsUsed["Bash"]; execs > 0 {
		parts = append(parts, fmt.Sprintf("执行%d命令", execs))
	}
	if reads := tr.ToolsUsed["Read"]; reads > 0 {
		parts = append(parts, fmt.Sprintf("读%d文件", reads))
	}
	if duration := Duration(tr.Records); duration != "" {
		parts = append(parts, "耗时"+duration)
	}

	return strings.Join(parts, statsSeparator)
}
