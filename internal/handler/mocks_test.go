package handler_test

import (
	"context"

	"todolist/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

type MockTaskGroupRepository struct {
	mock.Mock
}

func (m *MockTaskGroupRepository) Create(ctx context.Context, group *model.TaskGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockTaskGroupRepository) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.TaskGroup, error) {
	args := m.Called(ctx, id, ownerID)
	group := args.Get(0)
	if group == nil {
		return nil, args.Error(1)
	}
	return group.(*model.TaskGroup), args.Error(1)
}

func (m *MockTaskGroupRepository) ListOwned(ctx context.Context, ownerID uuid.UUID) ([]model.TaskGroup, error) {
	args := m.Called(ctx, ownerID)
	groups := args.Get(0)
	if groups == nil {
		return nil, args.Error(1)
	}
	return groups.([]model.TaskGroup), args.Error(1)
}

func (m *MockTaskGroupRepository) FindByTitle(ctx context.Context, ownerID uuid.UUID, title string) (*model.TaskGroup, error) {
	args := m.Called(ctx, ownerID, title)
	group := args.Get(0)
	if group == nil {
		return nil, args.Error(1)
	}
	return group.(*model.TaskGroup), args.Error(1)
}

func (m *MockTaskGroupRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id, ownerID)
	task := args.Get(0)
	if task == nil {
		return nil, args.Error(1)
	}
	return task.(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) GetByGroupID(ctx context.Context, groupID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, groupID)
	tasks := args.Get(0)
	if tasks == nil {
		return nil, args.Error(1)
	}
	return tasks.([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) Depth(ctx context.Context, task *model.Task) (int, error) {
	args := m.Called(ctx, task)
	return args.Int(0), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) MoveToGroup(ctx context.Context, taskID, groupID uuid.UUID) error {
	args := m.Called(ctx, taskID, groupID)
	return args.Error(0)
}

func (m *MockTaskRepository) DeleteSubtree(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
