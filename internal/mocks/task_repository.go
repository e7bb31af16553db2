package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/meukanban/kanban-api/internal/domain/model"
)

// MockTaskRepository é um mock para a interface TaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) ListByWorkspace(ctx context.Context, userID, workspace string) ([]*model.Task, error) {
	args := m.Called(ctx, userID, workspace)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*model.Task), args.Error(1)
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) (*model.Task, error) {
	args := m.Called(ctx, task)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, userID, taskID string, update model.TaskUpdate) (*model.Task, error) {
	args := m.Called(ctx, userID, taskID, update)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) Delete(ctx context.Context, userID, taskID string) error {
	args := m.Called(ctx, userID, taskID)
	return args.Error(0)
}

func (m *MockTaskRepository) CountByWorkspace(ctx context.Context, userID, workspace string) (int64, error) {
	args := m.Called(ctx, userID, workspace)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) DeleteByWorkspace(ctx context.Context, userID, workspace string) (int64, error) {
	args := m.Called(ctx, userID, workspace)
	return args.Get(0).(int64), args.Error(1)
}
