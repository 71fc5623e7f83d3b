package port

import (
	"context"

	"invana/internal/domain"
)

// ConfigStore reads and writes the flat JSON configuration documents
// wholesale: one global ExtractionConfig and one ClientOverrides document
// per client. Malformed documents surface as *domain.ConfigError; a
// missing client document surfaces as domain.ErrNotFound.
type ConfigStore interface {
	LoadGlobal(ctx context.Context) (*domain.ExtractionConfig, error)
	SaveGlobal(ctx context.Context, cfg *domain.ExtractionConfig) error
	LoadClientOverrides(ctx context.Context, clientID string) (*domain.ClientOverrides, error)
	SaveClientOverrides(ctx context.Context, clientID string, overrides *domain.ClientOverrides) error
}
