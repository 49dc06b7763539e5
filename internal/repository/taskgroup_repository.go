package repository

import (
	"context"
	"errors"

	"todolist/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskGroupRepository struct {
	db *gorm.DB
}

type TaskGroupRepositoryInterface interface {
	Create(ctx context.Context, group *model.TaskGroup) error
	GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.TaskGroup, error)
	ListOwned(ctx context.Context, ownerID uuid.UUID) ([]model.TaskGroup, error)
	FindByTitle(ctx context.Context, ownerID uuid.UUID, title string) (*model.TaskGroup, error)
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

var _ TaskGroupRepositoryInterface = (*TaskGroupRepository)(nil)

func NewTaskGroupRepository(db *gorm.DB) *TaskGroupRepository {
	return &TaskGroupRepository{db: db}
}

func (r *TaskGroupRepository) Create(ctx context.Context, group *model.TaskGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

// GetOwned retrieves a group only when it belongs to the given owner.
// A missing group and a foreign group are indistinguishable to the caller.
func (r *TaskGroupRepository) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.TaskGroup, error) {
	var group model.TaskGroup
	err := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *TaskGroupRepository) ListOwned(ctx context.Context, ownerID uuid.UUID) ([]model.TaskGroup, error) {
	var groups []model.TaskGroup
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at").Find(&groups).Error
	return groups, err
}

// FindByTitle looks up a group by exact title within one owner's groups.
func (r *TaskGroupRepository) FindByTitle(ctx context.Context, ownerID uuid.UUID, title string) (*model.TaskGroup, error) {
	var group model.TaskGroup
	err := r.db.WithContext(ctx).Where("owner_id = ? AND title = ?", ownerID, title).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// DeleteCascade removes a group and every task that references it, nested
// subtasks included, in a single transaction.
func (r *TaskGroupRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Task{}, "task_group_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.TaskGroup{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrGroupNotFound
		}
		return nil
	})
}
