package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"invana/internal/config"
	"invana/internal/domain"
	"invana/internal/port"
	"invana/internal/service"
	"invana/mocks"
)

type serviceFixture struct {
	store   *mocks.MockConfigStore
	storage *mocks.MockObjectStorage
	client  *mocks.MockModelClient
	factory *mocks.MockModelClientFactory
	svc     service.AnalysisService
}

func newFixture(t *testing.T) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		store:   new(mocks.MockConfigStore),
		storage: new(mocks.MockObjectStorage),
		client:  new(mocks.MockModelClient),
		factory: new(mocks.MockModelClientFactory),
	}
	f.svc = service.NewAnalysisService(
		f.store,
		f.storage,
		f.factory,
		&config.StorageConfig{Bucket: "invana-docs"},
		&config.StoreConfig{DocumentsPrefix: "documents/"},
		&config.GeminiConfig{APIKey: "svc-key", Model: "gemini-2.0-flash"},
	)
	return f
}

func globalConfig() *domain.ExtractionConfig {
	return &domain.ExtractionConfig{
		FieldDefinitions: []domain.FieldDefinition{
			{Key: "supplier", Label: "Supplier", Type: domain.FieldTypeText, Enabled: true},
			{Key: "invoiceDate", Label: "Invoice date", Type: domain.FieldTypeDate, Enabled: true},
			{Key: "paymentDate", Label: "Payment date", Type: domain.FieldTypeDate, Enabled: true},
		},
		Extraction: domain.ExtractionOptions{UseJSONMode: true},
	}
}

func modelOutput(text string) *port.GenerateOutput {
	return &port.GenerateOutput{
		Text: text,
		Usage: domain.TokenUsage{
			PromptTokens: 100,
			OutputTokens: 20,
			TotalTokens:  120,
		},
	}
}

func TestAnalyze_HappyPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.storage.On("Download", ctx, "invana-docs", "documents/invoice-1.pdf").
		Return([]byte("%PDF-1.4"), nil)
	f.store.On("LoadGlobal", ctx).Return(globalConfig(), nil)
	f.store.On("LoadClientOverrides", ctx, "acme").Return(nil, domain.ErrNotFound)
	f.factory.On("Client", "svc-key", "gemini-2.0-flash").Return(f.client, nil)
	f.client.On("Generate", ctx, mock.MatchedBy(func(in port.GenerateInput) bool {
		return in.ContentType == "application/pdf" && in.JSONMode && in.SystemPrompt != ""
	})).Return(modelOutput(`{"supplier":"ACME GmbH","invoiceDate":"20240115"}`), nil)

	record, err := f.svc.Analyze(ctx, &service.AnalyzeInput{
		DocumentKey: "invoice-1.pdf",
		ClientID:    "acme",
	})
	require.NoError(t, err)

	assert.Equal(t, "ACME GmbH", record["supplier"])
	assert.Equal(t, "20240115", record["invoiceDate"])
	assert.Equal(t, "20240115", record["paymentDate"])
	usage, ok := record[domain.TokenUsageKey].(domain.TokenUsage)
	require.True(t, ok)
	assert.Equal(t, 120, usage.TotalTokens)
	f.client.AssertExpectations(t)
}

func TestAnalyze_RawPromptDisablesJSONMode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cfg := globalConfig()
	cfg.RawPrompt = "Just describe this document."

	f.storage.On("Download", ctx, "invana-docs", "documents/invoice-1.pdf").
		Return([]byte("%PDF-1.4"), nil)
	f.store.On("LoadGlobal", ctx).Return(cfg, nil)
	f.factory.On("Client", "svc-key", "gemini-2.0-flash").Return(f.client, nil)
	f.client.On("Generate", ctx, mock.MatchedBy(func(in port.GenerateInput) bool {
		return !in.JSONMode && in.SystemPrompt == "Just describe this document."
	})).Return(modelOutput("```json\n{\"supplier\":\"ACME\"}\n```"), nil)

	record, err := f.svc.Analyze(ctx, &service.AnalyzeInput{DocumentKey: "invoice-1.pdf"})
	require.NoError(t, err)

	// Lenient parsing strips the fence the model wrapped around its answer.
	assert.Equal(t, "ACME", record["supplier"])
	f.client.AssertExpectations(t)
}

func TestAnalyze_MissingDocument(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.storage.On("Download", ctx, "invana-docs", "documents/gone.pdf").
		Return(nil, domain.ErrNotFound)

	_, err := f.svc.Analyze(ctx, &service.AnalyzeInput{DocumentKey: "gone.pdf"})
	require.Error(t, err)

	var ioErr *domain.IOError
	assert.True(t, errors.As(err, &ioErr))
	f.store.AssertNotCalled(t, "LoadGlobal", mock.Anything)
}

func TestAnalyze_UnsupportedFileType(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.storage.On("Download", ctx, "invana-docs", "documents/notes.txt").
		Return([]byte("plain text"), nil)

	_, err := f.svc.Analyze(ctx, &service.AnalyzeInput{DocumentKey: "notes.txt"})
	require.Error(t, err)

	var ioErr *domain.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestAnalyze_UnparseableModelResponse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.storage.On("Download", ctx, "invana-docs", "documents/invoice-1.pdf").
		Return([]byte("%PDF-1.4"), nil)
	f.store.On("LoadGlobal", ctx).Return(globalConfig(), nil)
	f.factory.On("Client", "svc-key", "gemini-2.0-flash").Return(f.client, nil)
	f.client.On("Generate", ctx, mock.Anything).
		Return(modelOutput("I could not read this document."), nil)

	_, err := f.svc.Analyze(ctx, &service.AnalyzeInput{DocumentKey: "invoice-1.pdf"})
	require.Error(t, err)

	var parseErr *domain.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestAnalyze_ModelInvocationErrorPassedThrough(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.storage.On("Download", ctx, "invana-docs", "documents/invoice-1.pdf").
		Return([]byte("%PDF-1.4"), nil)
	f.store.On("LoadGlobal", ctx).Return(globalConfig(), nil)
	f.factory.On("Client", "svc-key", "gemini-2.0-flash").Return(f.client, nil)
	f.client.On("Generate", ctx, mock.Anything).
		Return(nil, domain.NewModelInvocationError("gemini", 503, errors.New("overloaded")))

	_, err := f.svc.Analyze(ctx, &service.AnalyzeInput{DocumentKey: "invoice-1.pdf"})
	require.Error(t, err)

	var invErr *domain.ModelInvocationError
	require.True(t, errors.As(err, &invErr))
	assert.Equal(t, 503, invErr.StatusCode)
	f.client.AssertNumberOfCalls(t, "Generate", 1)
}

func TestAnalyze_OverrideLoadFailureAborts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.storage.On("Download", ctx, "invana-docs", "documents/invoice-1.pdf").
		Return([]byte("%PDF-1.4"), nil)
	f.store.On("LoadGlobal", ctx).Return(globalConfig(), nil)
	f.store.On("LoadClientOverrides", ctx, "acme").
		Return(nil, domain.NewConfigError(errors.New("corrupt overrides")))

	_, err := f.svc.Analyze(ctx, &service.AnalyzeInput{DocumentKey: "invoice-1.pdf", ClientID: "acme"})
	require.Error(t, err)

	var cfgErr *domain.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
	f.factory.AssertNotCalled(t, "Client", mock.Anything, mock.Anything)
}

func TestBuildPrompt_AppliesOverridesAndParameters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cfg := globalConfig()
	cfg.TagDefinitions = []domain.TagDefinition{
		{
			ID:          "addressMatch",
			Label:       "Address match",
			Instruction: "Check whether the billing address is {{address}}.",
			Parameters:  map[string]domain.TagParameter{"address": {Label: "Address", Default: "123 Main St"}},
			Enabled:     true,
		},
	}
	f.store.On("LoadGlobal", ctx).Return(cfg, nil)
	f.store.On("LoadClientOverrides", ctx, "acme").Return(nil, domain.ErrNotFound)

	rendered, err := f.svc.BuildPrompt(ctx, "acme", map[string]string{"address": "456 Oak Ave"})
	require.NoError(t, err)

	assert.Contains(t, rendered, "456 Oak Ave")
	assert.NotContains(t, rendered, "{{address}}")
}

func TestResetClients(t *testing.T) {
	f := newFixture(t)
	f.factory.On("Reset").Return()

	f.svc.ResetClients()

	f.factory.AssertCalled(t, "Reset")
}
