package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockKeyValueRepository is a mock implementation of repository.KeyValueRepository
type MockKeyValueRepository struct {
	mock.Mock
}

func (m *MockKeyValueRepository) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockKeyValueRepository) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockKeyValueRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
