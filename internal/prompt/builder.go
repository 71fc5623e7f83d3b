// Package prompt renders the effective extraction schema into the model
// prompt. Rendering is deterministic: identical inputs produce
// byte-identical prompts.
package prompt

import (
	"fmt"
	"strings"

	"invana/internal/schema"
)

// TagReplacedFields names well-known field keys that the tag mechanism
// supersedes. They are suppressed from the per-field instruction section
// whenever at least one tag is enabled, though they remain declared and
// are still defaulted in the output record.
var TagReplacedFields = map[string]bool{
	"documentCategory":     true,
	"containsPersonalData": true,
}

const summaryInstruction = `- "summary": Provide a brief natural-language summary of the document contents.`

// Build renders the final prompt for one analysis call. A configured raw
// prompt is returned verbatim and bypasses every other rule.
func Build(cfg *schema.EffectiveConfig, paramOverrides map[string]string) string {
	if cfg.RawPrompt != "" {
		return cfg.RawPrompt
	}

	enabledTags := cfg.EnabledTags()

	var b strings.Builder
	b.WriteString(cfg.Template.Preamble)
	b.WriteString("\n\n")

	for _, f := range cfg.Fields {
		if !f.Enabled {
			continue
		}
		if len(enabledTags) > 0 && TagReplacedFields[f.Key] {
			continue
		}
		fmt.Fprintf(&b, "- %q: %s (expected: %s)\n", f.Key, f.Instruction, f.SchemaHint)
	}

	for i := range enabledTags {
		tag := &enabledTags[i]
		fmt.Fprintf(&b, "- \"tags.%s\": %s (true or false)\n", tag.ID, ResolveTagInstruction(tag, paramOverrides))
	}

	b.WriteString("\n")
	b.WriteString(cfg.Template.GeneralRules)
	b.WriteString("\n")

	if cfg.Options.IncludeSummary {
		b.WriteString(summaryInstruction)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(cfg.Template.Suffix)

	return b.String()
}
