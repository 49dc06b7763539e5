package repository

import (
	"context"
	"errors"

	"todolist/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepository struct {
	db *gorm.DB
}

type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *model.Task) error
	GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error)
	GetByGroupID(ctx context.Context, groupID uuid.UUID) ([]model.Task, error)
	Depth(ctx context.Context, task *model.Task) (int, error)
	Update(ctx context.Context, task *model.Task) error
	MoveToGroup(ctx context.Context, taskID, groupID uuid.UUID) error
	DeleteSubtree(ctx context.Context, id uuid.UUID) error
}

var _ TaskRepositoryInterface = (*TaskRepository)(nil)

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetOwned retrieves a task only when it belongs to the given owner.
// A missing task and a foreign task are indistinguishable to the caller.
func (r *TaskRepository) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetByGroupID retrieves all tasks in a group, oldest first.
func (r *TaskRepository) GetByGroupID(ctx context.Context, groupID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).Where("task_group_id = ?", groupID).Order("created_at").Find(&tasks).Error
	return tasks, err
}

// Depth walks the parent chain counting links; a task with no parent has
// depth 1. Parents always predate their children and are never re-pointed,
// so the walk terminates.
func (r *TaskRepository) Depth(ctx context.Context, task *model.Task) (int, error) {
	depth := 1
	parentID := task.ParentTaskID
	for parentID != nil {
		var parent model.Task
		err := r.db.WithContext(ctx).Select("id", "parent_task_id").Where("id = ?", *parentID).First(&parent).Error
		if err != nil {
			return 0, err
		}
		depth++
		parentID = parent.ParentTaskID
	}
	return depth, nil
}

// Update updates an existing task
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	result := r.db.WithContext(ctx).Save(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// MoveToGroup reassigns a task's group. Only the group reference changes;
// callers are responsible for permitting this on root tasks only.
func (r *TaskRepository) MoveToGroup(ctx context.Context, taskID, groupID uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", taskID).
		Update("task_group_id", groupID)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// DeleteSubtree removes a task and all of its descendants in one transaction.
// Descendant IDs are collected level by level before a single delete, so a
// failure partway through leaves nothing deleted.
func (r *TaskRepository) DeleteSubtree(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		subtree := []uuid.UUID{id}
		frontier := []uuid.UUID{id}

		for len(frontier) > 0 {
			var children []model.Task
			err := tx.Select("id").Where("parent_task_id IN ?", frontier).Find(&children).Error
			if err != nil {
				return err
			}

			frontier = frontier[:0]
			for _, child := range children {
				subtree = append(subtree, child.ID)
				frontier = append(frontier, child.ID)
			}
		}

		result := tx.Delete(&model.Task{}, "id IN ?", subtree)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTaskNotFound
		}
		return nil
	})
}
