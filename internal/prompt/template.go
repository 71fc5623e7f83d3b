package prompt

import (
	"strings"

	"invana/internal/domain"
)

// ResolveTagInstruction substitutes every declared {{name}} placeholder
// in the tag's instruction text. A call-level override value wins over
// the parameter's configured default. Placeholders without a declared
// parameter pass through untouched; substitution is plain string
// replacement, not template evaluation.
func ResolveTagInstruction(tag *domain.TagDefinition, overrides map[string]string) string {
	if len(tag.Parameters) == 0 {
		return tag.Instruction
	}
	out := tag.Instruction
	for name, param := range tag.Parameters {
		value := param.Default
		if v, ok := overrides[name]; ok {
			value = v
		}
		out = strings.ReplaceAll(out, "{{"+name+"}}", value)
	}
	return out
}
