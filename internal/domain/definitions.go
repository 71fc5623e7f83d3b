package domain

import (
	"encoding/json"
	"fmt"
)

// FieldType is the declared value type of an extraction field. It drives
// the schema hint shown to the model and the default used when the model
// leaves the field out.
type FieldType string

const (
	FieldTypeText    FieldType = "text"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeArray   FieldType = "array"
	FieldTypeDate    FieldType = "date"
)

// fieldTypeDefaults is the type → default lookup for scalar types.
// Array defaults are produced per call so callers never share a slice.
var fieldTypeDefaults = map[FieldType]interface{}{
	FieldTypeText:    "Unknown",
	FieldTypeDate:    "Unknown",
	FieldTypeNumber:  float64(0),
	FieldTypeBoolean: false,
}

// Valid reports whether t is one of the declared field types.
func (t FieldType) Valid() bool {
	if t == FieldTypeArray {
		return true
	}
	_, ok := fieldTypeDefaults[t]
	return ok
}

// DefaultValue returns the value filled in for a missing field of this type.
func (t FieldType) DefaultValue() interface{} {
	if t == FieldTypeArray {
		return []interface{}{}
	}
	if v, ok := fieldTypeDefaults[t]; ok {
		return v
	}
	return "Unknown"
}

// FieldDefinition describes one extraction field. Key is stable across
// config versions and unique within an effective definition set.
type FieldDefinition struct {
	Key         string    `json:"key"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	SchemaHint  string    `json:"schemaHint"`
	Instruction string    `json:"instruction"`
	Enabled     bool      `json:"enabled"`
}

// TagParameter is a declared placeholder inside a tag instruction.
type TagParameter struct {
	Label   string `json:"label"`
	Default string `json:"default"`
}

// TagDefinition describes a boolean classification emitted as tags.<id>.
// Instruction may contain {{parameterName}} placeholders resolved at
// prompt-render time.
type TagDefinition struct {
	ID          string                  `json:"id"`
	Label       string                  `json:"label"`
	Instruction string                  `json:"instruction"`
	Parameters  map[string]TagParameter `json:"parameters,omitempty"`
	Enabled     bool                    `json:"enabled"`
}

// FieldOverride is one entry of a client's sparse field override map.
// It carries either an enabled toggle for a key that exists globally, or
// a full definition body for a custom key.
type FieldOverride struct {
	Enabled    *bool
	Definition *FieldDefinition
}

// EnabledOnly reports whether the override toggles the enabled flag
// without replacing any other attribute.
func (o FieldOverride) EnabledOnly() bool {
	return o.Definition == nil
}

func (o *FieldOverride) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if raw, ok := probe["enabled"]; ok && len(probe) == 1 {
		var enabled bool
		if err := json.Unmarshal(raw, &enabled); err != nil {
			return err
		}
		o.Enabled = &enabled
		o.Definition = nil
		return nil
	}
	var def FieldDefinition
	if err := json.Unmarshal(data, &def); err != nil {
		return err
	}
	o.Definition = &def
	o.Enabled = &def.Enabled
	return nil
}

func (o FieldOverride) MarshalJSON() ([]byte, error) {
	if o.Definition != nil {
		return json.Marshal(o.Definition)
	}
	enabled := false
	if o.Enabled != nil {
		enabled = *o.Enabled
	}
	return json.Marshal(map[string]bool{"enabled": enabled})
}

// TagOverride mirrors FieldOverride for tag definitions.
type TagOverride struct {
	Enabled    *bool
	Definition *TagDefinition
}

// EnabledOnly reports whether the override toggles the enabled flag only.
func (o TagOverride) EnabledOnly() bool {
	return o.Definition == nil
}

func (o *TagOverride) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if raw, ok := probe["enabled"]; ok && len(probe) == 1 {
		var enabled bool
		if err := json.Unmarshal(raw, &enabled); err != nil {
			return err
		}
		o.Enabled = &enabled
		o.Definition = nil
		return nil
	}
	var def TagDefinition
	if err := json.Unmarshal(data, &def); err != nil {
		return err
	}
	o.Definition = &def
	o.Enabled = &def.Enabled
	return nil
}

func (o TagOverride) MarshalJSON() ([]byte, error) {
	if o.Definition != nil {
		return json.Marshal(o.Definition)
	}
	enabled := false
	if o.Enabled != nil {
		enabled = *o.Enabled
	}
	return json.Marshal(map[string]bool{"enabled": enabled})
}

// ClientOverrides is the per-client override document: sparse maps from
// field key / tag id to an override entry.
type ClientOverrides struct {
	FieldOverrides map[string]FieldOverride `json:"fieldOverrides,omitempty"`
	TagOverrides   map[string]TagOverride   `json:"tagOverrides,omitempty"`
}

// ExtractionOptions controls prompt and response handling per §extraction
// of the global config document.
type ExtractionOptions struct {
	Fields         []string `json:"fields,omitempty"` // legacy explicit field list, kept for older documents
	IncludeSummary bool     `json:"includeSummary"`
	UseJSONMode    bool     `json:"useJsonMode"`
}

// PromptTemplate holds the static prompt sections surrounding the
// generated field and tag instructions.
type PromptTemplate struct {
	Preamble     string `json:"preamble"`
	GeneralRules string `json:"generalRules"`
	Suffix       string `json:"suffix"`
}

// ExtractionConfig is the single global configuration document.
type ExtractionConfig struct {
	FieldDefinitions []FieldDefinition `json:"fieldDefinitions"`
	TagDefinitions   []TagDefinition   `json:"tagDefinitions"`
	Extraction       ExtractionOptions `json:"extraction"`
	PromptTemplate   PromptTemplate    `json:"promptTemplate"`
	RawPrompt        string            `json:"rawPrompt,omitempty"`
}

// Validate checks the structural invariants of the config document:
// non-empty unique field keys and tag ids, known field types.
func (c *ExtractionConfig) Validate() error {
	seenFields := make(map[string]bool, len(c.FieldDefinitions))
	for _, f := range c.FieldDefinitions {
		if f.Key == "" {
			return NewConfigError(fmt.Errorf("field definition with empty key"))
		}
		if seenFields[f.Key] {
			return NewConfigError(fmt.Errorf("duplicate field key %q", f.Key))
		}
		seenFields[f.Key] = true
		if !f.Type.Valid() {
			return NewConfigError(fmt.Errorf("field %q has unknown type %q", f.Key, f.Type))
		}
	}
	seenTags := make(map[string]bool, len(c.TagDefinitions))
	for _, t := range c.TagDefinitions {
		if t.ID == "" {
			return NewConfigError(fmt.Errorf("tag definition with empty id"))
		}
		if seenTags[t.ID] {
			return NewConfigError(fmt.Errorf("duplicate tag id %q", t.ID))
		}
		seenTags[t.ID] = true
	}
	return nil
}
