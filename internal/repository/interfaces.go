package repository

import (
	"context"

	"github.com/dom/task-manager/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsernameOrEmail(ctx context.Context, value string) (*domain.User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Update(ctx context.Context, user *domain.User) error
}

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	// GetByID loads the task together with its owning user.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	// GetAll returns every task with its owning user; filtering, sorting and
	// pagination happen in memory in the service layer.
	GetAll(ctx context.Context) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, task *domain.Task) error
}

type Repositories struct {
	User UserRepository
	Task TaskRepository
}
