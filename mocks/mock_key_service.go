package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"brfiscal/internal/edoc"
	"brfiscal/internal/service"
)

// MockKeyService is a mock implementation of service.KeyService.
type MockKeyService struct {
	mock.Mock
}

func (m *MockKeyService) Parse(ctx context.Context, raw string) (*service.KeyInfo, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.KeyInfo), args.Error(1)
}

func (m *MockKeyService) Build(ctx context.Context, fields edoc.Fields) (*service.KeyInfo, error) {
	args := m.Called(ctx, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.KeyInfo), args.Error(1)
}

func (m *MockKeyService) Partition(ctx context.Context, raw string, n int) ([]string, error) {
	args := m.Called(ctx, raw, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
