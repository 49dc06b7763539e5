package repository_test

import (
	"context"
	"testing"

	"todolist/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTaskGroupRepository_GetOwned_ScopesByOwner(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	groupRepo := repository.NewTaskGroupRepository(gormDB)

	groupID := uuid.New()
	ownerID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "task_groups" WHERE id = .* AND owner_id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "owner_id"}).
			AddRow(groupID.String(), "Home", ownerID.String()))

	// Act
	group, err := groupRepo.GetOwned(context.Background(), groupID, ownerID)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, group)
	assert.Equal(t, "Home", group.Title)
	assert.Equal(t, ownerID, group.OwnerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskGroupRepository_GetOwned_ForeignGroupLooksMissing(t *testing.T) {
	// A group owned by someone else comes back exactly like a missing one.
	gormDB, mock := setupMockDB(t)
	groupRepo := repository.NewTaskGroupRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "task_groups" WHERE id = .* AND owner_id = .*`).
		WillReturnError(gorm.ErrRecordNotFound)

	group, err := groupRepo.GetOwned(context.Background(), uuid.New(), uuid.New())

	assert.NoError(t, err)
	assert.Nil(t, group)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskGroupRepository_FindByTitle_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	groupRepo := repository.NewTaskGroupRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "task_groups" WHERE owner_id = .* AND title = .*`).
		WillReturnError(gorm.ErrRecordNotFound)

	group, err := groupRepo.FindByTitle(context.Background(), uuid.New(), "Home")

	assert.NoError(t, err)
	assert.Nil(t, group)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskGroupRepository_DeleteCascade(t *testing.T) {
	// Arrange: the group's tasks go first, then the group, in one transaction
	gormDB, mock := setupMockDB(t)
	groupRepo := repository.NewTaskGroupRepository(gormDB)

	groupID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "tasks" WHERE task_group_id = .*`).
		WithArgs(groupID).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(`DELETE FROM "task_groups" WHERE id = .*`).
		WithArgs(groupID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	err := groupRepo.DeleteCascade(context.Background(), groupID)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskGroupRepository_DeleteCascade_GroupMissing(t *testing.T) {
	// A vanished group rolls the whole transaction back.
	gormDB, mock := setupMockDB(t)
	groupRepo := repository.NewTaskGroupRepository(gormDB)

	groupID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "tasks" WHERE task_group_id = .*`).
		WithArgs(groupID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "task_groups" WHERE id = .*`).
		WithArgs(groupID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := groupRepo.DeleteCascade(context.Background(), groupID)

	assert.ErrorIs(t, err, repository.ErrGroupNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
