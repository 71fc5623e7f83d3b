package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invana/internal/domain"
	"invana/internal/service"
)

// MockAnalysisService is a mock implementation of service.AnalysisService.
type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) Analyze(ctx context.Context, input *service.AnalyzeInput) (domain.Record, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Record), args.Error(1)
}

func (m *MockAnalysisService) BuildPrompt(ctx context.Context, clientID string, parameters map[string]string) (string, error) {
	args := m.Called(ctx, clientID, parameters)
	return args.String(0), args.Error(1)
}

func (m *MockAnalysisService) ResetClients() {
	m.Called()
}
