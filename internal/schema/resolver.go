// Package schema resolves the three-layer extraction configuration
// (global definitions → client overrides → call-level parameters) into
// an effective definition set. Merges never mutate their inputs.
package schema

import (
	"sort"

	"invana/internal/domain"
)

// ResolveFields merges global field definitions with a client's sparse
// override map. Global definitions keep their original order; keys that
// exist only in the override map are appended afterwards, sorted by key
// so the result is deterministic. Disabled definitions stay in the
// effective set so defaulting logic can still see them.
func ResolveFields(global []domain.FieldDefinition, overrides map[string]domain.FieldOverride) []domain.FieldDefinition {
	effective := make([]domain.FieldDefinition, 0, len(global)+len(overrides))
	seen := make(map[string]bool, len(global))

	for _, def := range global {
		seen[def.Key] = true
		ov, ok := overrides[def.Key]
		if !ok {
			effective = append(effective, def)
			continue
		}
		if ov.EnabledOnly() {
			if ov.Enabled != nil {
				def.Enabled = *ov.Enabled
			}
			effective = append(effective, def)
			continue
		}
		custom := *ov.Definition
		custom.Key = def.Key
		effective = append(effective, custom)
	}

	for _, key := range sortedKeys(overrides) {
		if seen[key] {
			continue
		}
		ov := overrides[key]
		if ov.Definition == nil {
			// Toggle for a key that no longer exists globally; nothing to enable.
			continue
		}
		custom := *ov.Definition
		custom.Key = key
		effective = append(effective, custom)
	}

	return effective
}

// ResolveTags merges global tag definitions with a client's sparse
// override map, with the same ordering rules as ResolveFields.
func ResolveTags(global []domain.TagDefinition, overrides map[string]domain.TagOverride) []domain.TagDefinition {
	effective := make([]domain.TagDefinition, 0, len(global)+len(overrides))
	seen := make(map[string]bool, len(global))

	for _, def := range global {
		seen[def.ID] = true
		ov, ok := overrides[def.ID]
		if !ok {
			effective = append(effective, def)
			continue
		}
		if ov.EnabledOnly() {
			if ov.Enabled != nil {
				def.Enabled = *ov.Enabled
			}
			effective = append(effective, def)
			continue
		}
		custom := *ov.Definition
		custom.ID = def.ID
		effective = append(effective, custom)
	}

	for _, id := range sortedKeys(overrides) {
		if seen[id] {
			continue
		}
		ov := overrides[id]
		if ov.Definition == nil {
			continue
		}
		custom := *ov.Definition
		custom.ID = id
		effective = append(effective, custom)
	}

	return effective
}

// EffectiveConfig is the fully merged configuration for one analysis call.
type EffectiveConfig struct {
	Fields    []domain.FieldDefinition
	Tags      []domain.TagDefinition
	Options   domain.ExtractionOptions
	Template  domain.PromptTemplate
	RawPrompt string
}

// Resolve merges the global config document with a client's overrides.
// A nil overrides document leaves the global definitions untouched.
func Resolve(global *domain.ExtractionConfig, overrides *domain.ClientOverrides) *EffectiveConfig {
	var fieldOv map[string]domain.FieldOverride
	var tagOv map[string]domain.TagOverride
	if overrides != nil {
		fieldOv = overrides.FieldOverrides
		tagOv = overrides.TagOverrides
	}
	return &EffectiveConfig{
		Fields:    ResolveFields(global.FieldDefinitions, fieldOv),
		Tags:      ResolveTags(global.TagDefinitions, tagOv),
		Options:   global.Extraction,
		Template:  global.PromptTemplate,
		RawPrompt: global.RawPrompt,
	}
}

// EnabledTags returns the enabled subset of the effective tag set.
func (c *EffectiveConfig) EnabledTags() []domain.TagDefinition {
	out := make([]domain.TagDefinition, 0, len(c.Tags))
	for _, t := range c.Tags {
		if t.Enabled {
			out = append(out, t)
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
