package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invana/internal/domain"
	"invana/internal/parser"
)

func typedFields() []domain.FieldDefinition {
	return []domain.FieldDefinition{
		{Key: "supplier", Type: domain.FieldTypeText, Enabled: true},
		{Key: "totalAmount", Type: domain.FieldTypeNumber, Enabled: true},
		{Key: "isCredit", Type: domain.FieldTypeBoolean, Enabled: true},
		{Key: "lineItems", Type: domain.FieldTypeArray, Enabled: true},
		{Key: "invoiceDate", Type: domain.FieldTypeDate, Enabled: true},
	}
}

func TestNormalize_TypeAppropriateDefaults(t *testing.T) {
	out := parser.Normalize(domain.Record{}, typedFields(), nil)

	assert.Equal(t, "Unknown", out["supplier"])
	assert.Equal(t, float64(0), out["totalAmount"])
	assert.Equal(t, false, out["isCredit"])
	assert.Equal(t, []interface{}{}, out["lineItems"])
	assert.Equal(t, "Unknown", out["invoiceDate"])
}

func TestNormalize_ExistingValuesPreserved(t *testing.T) {
	rec := domain.Record{
		"supplier":    "ACME GmbH",
		"totalAmount": float64(119.0),
	}

	out := parser.Normalize(rec, typedFields(), nil)

	assert.Equal(t, "ACME GmbH", out["supplier"])
	assert.Equal(t, float64(119.0), out["totalAmount"])
}

func TestNormalize_DisabledFieldsNotDefaulted(t *testing.T) {
	fields := []domain.FieldDefinition{
		{Key: "hidden", Type: domain.FieldTypeText, Enabled: false},
	}

	out := parser.Normalize(domain.Record{}, fields, nil)

	_, present := out["hidden"]
	assert.False(t, present)
}

func TestNormalize_PaymentDateFallsBackToInvoiceDate(t *testing.T) {
	fields := []domain.FieldDefinition{
		{Key: "invoiceDate", Type: domain.FieldTypeDate, Enabled: true},
		{Key: "paymentDate", Type: domain.FieldTypeDate, Enabled: true},
	}

	out := parser.Normalize(domain.Record{"invoiceDate": "20240115"}, fields, nil)

	assert.Equal(t, "20240115", out["paymentDate"])
}

func TestNormalize_PaymentDateKeptWhenPresent(t *testing.T) {
	fields := []domain.FieldDefinition{
		{Key: "invoiceDate", Type: domain.FieldTypeDate, Enabled: true},
		{Key: "paymentDate", Type: domain.FieldTypeDate, Enabled: true},
	}
	rec := domain.Record{"invoiceDate": "20240115", "paymentDate": "20240201"}

	out := parser.Normalize(rec, fields, nil)

	assert.Equal(t, "20240201", out["paymentDate"])
}

func TestNormalize_NoFallbackWhenInvoiceDateUnknown(t *testing.T) {
	fields := []domain.FieldDefinition{
		{Key: "invoiceDate", Type: domain.FieldTypeDate, Enabled: true},
		{Key: "paymentDate", Type: domain.FieldTypeDate, Enabled: true},
	}

	out := parser.Normalize(domain.Record{}, fields, nil)

	assert.Equal(t, "Unknown", out["paymentDate"])
}

func TestNormalize_NoFallbackWhenPaymentDateUndeclared(t *testing.T) {
	fields := []domain.FieldDefinition{
		{Key: "invoiceDate", Type: domain.FieldTypeDate, Enabled: true},
	}

	out := parser.Normalize(domain.Record{"invoiceDate": "20240115"}, fields, nil)

	_, present := out["paymentDate"]
	assert.False(t, present)
}

func TestNormalize_EnabledTagsDefaultFalse(t *testing.T) {
	tags := []domain.TagDefinition{
		{ID: "urgent", Enabled: true},
		{ID: "recurring", Enabled: true},
	}
	rec := domain.Record{"tags": map[string]interface{}{"urgent": true}}

	out := parser.Normalize(rec, nil, tags)

	result := out.Tags()
	require.NotNil(t, result)
	assert.Equal(t, true, result["urgent"])
	assert.Equal(t, false, result["recurring"])
}

func TestNormalize_TagsObjectAlwaysPresent(t *testing.T) {
	out := parser.Normalize(domain.Record{}, nil, nil)

	require.NotNil(t, out.Tags())
	assert.Empty(t, out.Tags())
}

func TestNormalize_DisabledTagNotAdded(t *testing.T) {
	tags := []domain.TagDefinition{
		{ID: "dormant", Enabled: false},
	}

	out := parser.Normalize(domain.Record{}, nil, tags)

	_, present := out.Tags()["dormant"]
	assert.False(t, present)
}

func TestNormalize_InputNotMutated(t *testing.T) {
	rec := domain.Record{}

	_ = parser.Normalize(rec, typedFields(), nil)

	assert.Empty(t, rec)
}
