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

func TestUserRepository_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user := &domain.User{
		ID:                    uuid.New(),
		Username:              "alice",
		Email:                 "alice@example.com",
		PasswordHash:          "hashed",
		RefreshToken:          "refresh",
		RefreshTokenExpiresAt: time.Now().UTC().Add(24 * time.Hour),
	}

	require.NoError(t, repo.Create(ctx, user))

	t.Run("duplicate username rejected", func(t *testing.T) {
		dup := &domain.User{
			ID:           uuid.New(),
			Username:     "alice",
			Email:        "alice2@example.com",
			PasswordHash: "hashed",
			RefreshToken: "refresh",
		}
		assert.Error(t, repo.Create(ctx, dup))
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		dup := &domain.User{
			ID:           uuid.New(),
			Username:     "alice2",
			Email:        "alice@example.com",
			PasswordHash: "hashed",
			RefreshToken: "refresh",
		}
		assert.Error(t, repo.Create(ctx, dup))
	})
}

func TestUserRepository_GetByUsernameOrEmail(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithUsername("bob").
		WithEmail("bob@example.com").
		Build(t, testDB.DB)

	t.Run("by username", func(t *testing.T) {
		got, err := repo.GetByUsernameOrEmail(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("by email", func(t *testing.T) {
		got, err := repo.GetByUsernameOrEmail(ctx, "bob@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("unknown value", func(t *testing.T) {
		_, err := repo.GetByUsernameOrEmail(ctx, "nobody")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestUserRepository_GetByID(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, got.Username)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_Exists(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	exists, err := repo.Exists(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_Update(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	user.RefreshToken = "rotated"
	user.RefreshTokenExpiresAt = time.Now().UTC().Add(48 * time.Hour)
	require.NoError(t, repo.Update(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "rotated", got.RefreshToken)
}
