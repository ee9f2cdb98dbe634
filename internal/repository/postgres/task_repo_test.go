package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/dom/task-manager/internal/domain"
	"github.com/dom/task-manager/internal/repository/postgres"
	"github.com/dom/task-manager/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTaskRepository_CreateAndGetByID(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewTaskRepository(testDB.DB)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().WithUsername("owner").Build(t, testDB.DB)

	due := time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)
	task := &domain.Task{
		ID:          uuid.New(),
		Title:       "Ship release",
		Description: "cut the 1.4 tag",
		DueDate:     &due,
		Status:      domain.StatusInProgress,
		Priority:    domain.PriorityHigh,
		UserID:      owner.ID,
	}

	require.NoError(t, repo.Create(ctx, task))

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ship release", got.Title)
	assert.Equal(t, domain.StatusInProgress, got.Status)
	assert.Equal(t, domain.PriorityHigh, got.Priority)

	// The owning user is loaded eagerly.
	assert.Equal(t, "owner", got.User.Username)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTaskRepository_GetAll(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewTaskRepository(testDB.DB)
	ctx := context.Background()

	alice, _ := testutil.NewUserBuilder().WithUsername("alice").Build(t, testDB.DB)
	bob, _ := testutil.NewUserBuilder().WithUsername("bob").Build(t, testDB.DB)

	testutil.NewTaskBuilder().WithOwner(alice).Build(t, testDB.DB)
	testutil.NewTaskBuilder().WithOwner(alice).Build(t, testDB.DB)
	testutil.NewTaskBuilder().WithOwner(bob).Build(t, testDB.DB)

	// Every task comes back, across all owners, with users attached.
	tasks, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	for _, task := range tasks {
		assert.NotEmpty(t, task.User.Username)
	}
}

func TestTaskRepository_Update(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewTaskRepository(testDB.DB)
	ctx := context.Background()

	task := testutil.NewTaskBuilder().WithTitle("before").Build(t, testDB.DB)

	loaded, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)

	loaded.Title = "after"
	loaded.Status = domain.StatusCompleted
	require.NoError(t, repo.Update(ctx, loaded))

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
	assert.Equal(t, domain.StatusCompleted, got.Status)
}

func TestTaskRepository_Delete(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewTaskRepository(testDB.DB)
	ctx := context.Background()

	task := testutil.NewTaskBuilder().Build(t, testDB.DB)

	require.NoError(t, repo.Delete(ctx, task))

	_, err := repo.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
