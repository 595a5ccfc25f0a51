package transcript

import (
	"encoding/json"
	"strings"
)

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ExtractText normalizes a content field to a single string. A plain JSON
// string is returned unchanged; a block list contributes the text of its
// "text"-typed blocks joined by newlines, in original order. Any other
// shape yields the empty string. Malformed elements are skipped.
func ExtractText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return ""
	}

	var parts []string
	for _, elem := range elems {
		var block contentBlock
		if err := json.Unmarshal(elem, &block); err != nil {
			continue // Skip malformed elements
		}
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, "\n")
}
