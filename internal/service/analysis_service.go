package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"invana/internal/config"
	"invana/internal/domain"
	"invana/internal/parser"
	"invana/internal/port"
	"invana/internal/prompt"
	"invana/internal/schema"
)

// AnalyzeInput is the DTO for a single document analysis call.
type AnalyzeInput struct {
	// DocumentKey locates the source document in object storage,
	// relative to the configured documents prefix.
	DocumentKey string
	// ClientID selects the client override document; empty means the
	// global configuration applies unmodified.
	ClientID string
	// Parameters are call-level tag parameter overrides, applied only at
	// prompt-render time and never persisted.
	Parameters map[string]string
}

// AnalysisService is the public entry point of the extraction pipeline.
type AnalysisService interface {
	Analyze(ctx context.Context, input *AnalyzeInput) (domain.Record, error)
	// BuildPrompt renders the effective prompt for a client without
	// invoking the model. The config editor's preview uses it.
	BuildPrompt(ctx context.Context, clientID string, parameters map[string]string) (string, error)
	// ResetClients clears the model-client cache.
	ResetClients()
}

type analysisService struct {
	store     port.ConfigStore
	storage   port.ObjectStorage
	clients   port.ModelClientFactory
	bucket    string
	docPrefix string
	gemini    config.GeminiConfig
}

// NewAnalysisService creates an AnalysisService implementation.
func NewAnalysisService(
	store port.ConfigStore,
	storage port.ObjectStorage,
	clients port.ModelClientFactory,
	storageCfg *config.StorageConfig,
	storeCfg *config.StoreConfig,
	geminiCfg *config.GeminiConfig,
) AnalysisService {
	return &analysisService{
		store:     store,
		storage:   storage,
		clients:   clients,
		bucket:    storageCfg.Bucket,
		docPrefix: storeCfg.DocumentsPrefix,
		gemini:    *geminiCfg,
	}
}

func (s *analysisService) Analyze(ctx context.Context, input *AnalyzeInput) (domain.Record, error) {
	analysisID := uuid.New()
	start := time.Now()

	key := s.docPrefix + input.DocumentKey
	document, err := s.storage.Download(ctx, s.bucket, key)
	if err != nil {
		return nil, domain.NewIOError(input.DocumentKey, err)
	}
	contentType, err := domain.ContentTypeForKey(input.DocumentKey)
	if err != nil {
		return nil, domain.NewIOError(input.DocumentKey, err)
	}

	effective, err := s.resolveEffective(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}

	systemPrompt := prompt.Build(effective, input.Parameters)

	// Raw-prompt mode always bypasses the structured-output directive.
	jsonMode := effective.Options.UseJSONMode && effective.RawPrompt == ""

	client, err := s.clients.Client(s.gemini.APIKey, s.gemini.Model)
	if err != nil {
		return nil, domain.NewModelInvocationError("gemini", 0, err)
	}

	out, err := client.Generate(ctx, port.GenerateInput{
		Document:     document,
		ContentType:  contentType,
		SystemPrompt: systemPrompt,
		JSONMode:     jsonMode,
	})
	if err != nil {
		return nil, err
	}

	record, err := parser.ParseResponse(out.Text, jsonMode)
	if err != nil {
		return nil, err
	}

	record = parser.Normalize(record, effective.Fields, effective.Tags)
	record[domain.TokenUsageKey] = out.Usage

	log.Printf("service.AnalysisService: analysis %s done: document=%s client=%s tokens=%d elapsed=%s",
		analysisID, input.DocumentKey, input.ClientID, out.Usage.TotalTokens, time.Since(start))
	return record, nil
}

func (s *analysisService) BuildPrompt(ctx context.Context, clientID string, parameters map[string]string) (string, error) {
	effective, err := s.resolveEffective(ctx, clientID)
	if err != nil {
		return "", err
	}
	return prompt.Build(effective, parameters), nil
}

func (s *analysisService) ResetClients() {
	s.clients.Reset()
}

// resolveEffective loads the global config and the client's overrides
// and merges them. A client without an override document gets the global
// definitions unmodified.
func (s *analysisService) resolveEffective(ctx context.Context, clientID string) (*schema.EffectiveConfig, error) {
	global, err := s.store.LoadGlobal(ctx)
	if err != nil {
		return nil, err
	}
	var overrides *domain.ClientOverrides
	if clientID != "" {
		overrides, err = s.store.LoadClientOverrides(ctx, clientID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	return schema.Resolve(global, overrides), nil
}
