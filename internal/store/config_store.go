// Package store persists the flat JSON configuration documents: one
// global extraction config and one sparse override document per client,
// read and written wholesale over object storage.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"invana/internal/config"
	"invana/internal/domain"
	"invana/internal/port"
)

type configStore struct {
	storage         port.ObjectStorage
	bucket          string
	globalKey       string
	overridesPrefix string
}

// NewConfigStore creates a ConfigStore over the given object storage.
func NewConfigStore(storage port.ObjectStorage, storageCfg *config.StorageConfig, storeCfg *config.StoreConfig) port.ConfigStore {
	return &configStore{
		storage:         storage,
		bucket:          storageCfg.Bucket,
		globalKey:       storeCfg.GlobalKey,
		overridesPrefix: storeCfg.OverridesPrefix,
	}
}

func (s *configStore) overridesKey(clientID string) string {
	return s.overridesPrefix + clientID + ".json"
}

func (s *configStore) LoadGlobal(ctx context.Context) (*domain.ExtractionConfig, error) {
	data, err := s.storage.Download(ctx, s.bucket, s.globalKey)
	if err != nil {
		return nil, err
	}
	var cfg domain.ExtractionConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, domain.NewConfigError(fmt.Errorf("unmarshaling global config: %w", err))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *configStore) SaveGlobal(ctx context.Context, cfg *domain.ExtractionConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling global config: %w", err)
	}
	return s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         s.globalKey,
		Body:        bytes.NewReader(data),
		ContentType: "application/json",
	})
}

func (s *configStore) LoadClientOverrides(ctx context.Context, clientID string) (*domain.ClientOverrides, error) {
	data, err := s.storage.Download(ctx, s.bucket, s.overridesKey(clientID))
	if err != nil {
		return nil, err
	}
	var overrides domain.ClientOverrides
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, domain.NewConfigError(fmt.Errorf("unmarshaling overrides for client %q: %w", clientID, err))
	}
	return &overrides, nil
}

func (s *configStore) SaveClientOverrides(ctx context.Context, clientID string, overrides *domain.ClientOverrides) error {
	data, err := json.MarshalIndent(overrides, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling overrides for client %q: %w", clientID, err)
	}
	return s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         s.overridesKey(clientID),
		Body:        bytes.NewReader(data),
		ContentType: "application/json",
	})
}
