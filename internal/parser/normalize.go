package parser

import (
	"invana/internal/domain"
)

// Normalize completes a parsed (possibly partial) record against the
// effective definitions: every enabled field gets a type-appropriate
// default when missing, the paymentDate fallback is applied, and the
// tags object carries one boolean per enabled tag. Present values are
// never overwritten or coerced. The input record is not mutated.
func Normalize(rec domain.Record, fields []domain.FieldDefinition, tags []domain.TagDefinition) domain.Record {
	out := make(domain.Record, len(rec)+len(fields)+1)
	for k, v := range rec {
		out[k] = v
	}

	for _, f := range fields {
		if !f.Enabled {
			continue
		}
		if v, ok := out[f.Key]; !ok || v == nil {
			out[f.Key] = f.Type.DefaultValue()
		}
	}

	applyPaymentDateFallback(out)

	existing, _ := out["tags"].(map[string]interface{})
	normalized := make(map[string]interface{}, len(tags)+len(existing))
	for id, v := range existing {
		normalized[id] = v
	}
	for _, t := range tags {
		if !t.Enabled {
			continue
		}
		if _, ok := normalized[t.ID]; !ok {
			normalized[t.ID] = false
		}
	}
	out["tags"] = normalized

	return out
}

// applyPaymentDateFallback copies invoiceDate into paymentDate when the
// model left paymentDate blank but found an invoice date. This is a
// single named rule for that one field pair, not a general mechanism.
func applyPaymentDateFallback(rec domain.Record) {
	payment, ok := rec["paymentDate"]
	if !ok {
		return
	}
	if payment != nil && payment != "Unknown" && payment != "" {
		return
	}
	invoice, ok := rec["invoiceDate"]
	if !ok || invoice == nil || invoice == "Unknown" || invoice == "" {
		return
	}
	rec["paymentDate"] = invoice
}
