package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"brfiscal/internal/service"
	"brfiscal/internal/validator"
	"brfiscal/internal/validator/document"
)

// MockDocumentService is a mock implementation of service.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Validate(ctx context.Context, doc *document.Document, rules []string) (*validator.Report, error) {
	args := m.Called(ctx, doc, rules)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*validator.Report), args.Error(1)
}

func (m *MockDocumentService) Rules(ctx context.Context) []service.RuleInfo {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]service.RuleInfo)
}
