package model

import (
	"time"

	"github.com/google/uuid"
)

// Task statuses
const (
	StatusToDo       = "To Do"
	StatusInProgress = "In Progress"
	StatusDone       = "Done"
)

// ValidStatus reports whether s is one of the allowed task statuses.
func ValidStatus(s string) bool {
	return s == StatusToDo || s == StatusInProgress || s == StatusDone
}

// Task belongs to exactly one TaskGroup and optionally to a parent Task.
// Subtasks always live in the same group as their parent; nesting is capped
// at three levels. ParentTaskID is set at creation and never re-pointed, so
// the parent chain cannot form a cycle.
type Task struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TaskGroupID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title        string     `gorm:"not null"`
	Status       string     `gorm:"not null;default:'To Do';check:status IN ('To Do', 'In Progress', 'Done')"`
	IsCompleted  bool       `gorm:"not null;default:false"`
	ParentTaskID *uuid.UUID `gorm:"type:uuid;index"`
	OwnerID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	TaskGroup  TaskGroup `gorm:"foreignKey:TaskGroupID"`
	ParentTask *Task     `gorm:"foreignKey:ParentTaskID"`
	Owner      User      `gorm:"foreignKey:OwnerID"`
}
