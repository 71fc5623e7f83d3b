package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invana/internal/domain"
)

// MockConfigStore is a mock implementation of port.ConfigStore.
type MockConfigStore struct {
	mock.Mock
}

func (m *MockConfigStore) LoadGlobal(ctx context.Context) (*domain.ExtractionConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionConfig), args.Error(1)
}

func (m *MockConfigStore) SaveGlobal(ctx context.Context, cfg *domain.ExtractionConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func (m *MockConfigStore) LoadClientOverrides(ctx context.Context, clientID string) (*domain.ClientOverrides, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientOverrides), args.Error(1)
}

func (m *MockConfigStore) SaveClientOverrides(ctx context.Context, clientID string, overrides *domain.ClientOverrides) error {
	args := m.Called(ctx, clientID, overrides)
	return args.Error(0)
}
