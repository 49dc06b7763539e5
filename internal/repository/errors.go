package repository

import "errors"

// Common repository errors
var (
	// ErrTaskNotFound is returned when a task is not found
	ErrTaskNotFound = errors.New("task not found")

	// ErrGroupNotFound is returned when a task group is not found
	ErrGroupNotFound = errors.New("task group not found")
)
