package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"brfiscal/internal/domain"
)

// MockIdentifierService is a mock implementation of service.IdentifierService.
type MockIdentifierService struct {
	mock.Mock
}

func (m *MockIdentifierService) Validate(ctx context.Context, in domain.IdentifierInput) (*domain.IdentifierResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IdentifierResult), args.Error(1)
}

func (m *MockIdentifierService) Format(ctx context.Context, in domain.IdentifierInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *MockIdentifierService) ValidateBatch(ctx context.Context, inputs []domain.IdentifierInput) (*domain.BatchResult, error) {
	args := m.Called(ctx, inputs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchResult), args.Error(1)
}
