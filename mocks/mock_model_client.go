package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invana/internal/port"
)

// MockModelClient is a mock implementation of port.ModelClient.
type MockModelClient struct {
	mock.Mock
}

func (m *MockModelClient) Generate(ctx context.Context, input port.GenerateInput) (*port.GenerateOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.GenerateOutput), args.Error(1)
}

// MockModelClientFactory is a mock implementation of port.ModelClientFactory.
type MockModelClientFactory struct {
	mock.Mock
}

func (m *MockModelClientFactory) Client(apiKey, model string) (port.ModelClient, error) {
	args := m.Called(apiKey, model)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(port.ModelClient), args.Error(1)
}

func (m *MockModelClientFactory) Reset() {
	m.Called()
}
