// Package parser turns the model's raw text answer into a complete,
// schema-conformant record: JSON extraction first, then type-driven
// defaulting and cross-field repair.
package parser

import (
	"encoding/json"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"

	"invana/internal/domain"
)

// ParseResponse extracts the JSON object from the model's raw answer.
// In lenient mode (strict=false) a leading markdown code fence, with or
// without a language hint, is stripped, and common JSON defects are
// repaired before giving up. In strict mode the text must already be
// valid JSON; the orchestrator selects strict mode when structured
// output was requested from the provider.
func ParseResponse(text string, strict bool) (domain.Record, error) {
	raw := strings.TrimSpace(text)
	if !strict {
		raw = stripCodeFence(raw)
	}

	var rec domain.Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		if strict {
			return nil, domain.NewParseError(err)
		}
		repaired, rerr := jsonrepair.RepairJSON(raw)
		if rerr != nil {
			return nil, domain.NewParseError(err)
		}
		if uerr := json.Unmarshal([]byte(repaired), &rec); uerr != nil {
			return nil, domain.NewParseError(err)
		}
	}
	return rec, nil
}

// stripCodeFence removes a surrounding markdown code fence. The fence
// markers (and any language hint on the opening line) are discarded;
// inner content is preserved verbatim.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	rest := strings.TrimPrefix(s, "```")
	newline := strings.IndexByte(rest, '\n')
	if newline < 0 {
		return s
	}
	rest = rest[newline+1:]
	rest = strings.TrimSpace(rest)
	rest = strings.TrimSuffix(rest, "```")
	return strings.TrimSpace(rest)
}
