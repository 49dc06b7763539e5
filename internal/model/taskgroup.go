package model

import (
	"time"

	"github.com/google/uuid"
)

// TaskGroup is a named list of tasks. Titles are unique per owner, not globally.
type TaskGroup struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title     string    `gorm:"not null;uniqueIndex:idx_task_groups_owner_title"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_task_groups_owner_title"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Owner User `gorm:"foreignKey:OwnerID"`
}
