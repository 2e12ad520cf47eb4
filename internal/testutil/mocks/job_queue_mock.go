package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/mathsprint/internal/models"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueArchive(ctx context.Context, run models.RunRecord) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}
