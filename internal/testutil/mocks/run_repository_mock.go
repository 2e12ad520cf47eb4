package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/mathsprint/internal/models"
)

// MockRunRepository is a mock implementation of repository.RunRepository
type MockRunRepository struct {
	mock.Mock
}

func (m *MockRunRepository) Insert(ctx context.Context, run models.RunRecord) (int64, error) {
	args := m.Called(ctx, run)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRunRepository) List(ctx context.Context, filter models.RunFilter) ([]models.RunRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RunRecord), args.Error(1)
}

func (m *MockRunRepository) Count(ctx context.Context, filter models.RunFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}
