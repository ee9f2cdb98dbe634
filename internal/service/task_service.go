package service

import (
	"context"
	"errors"
	"time"

	"github.com/dom/task-manager/internal/domain"
	"github.com/dom/task-manager/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

type CreateTaskInput struct {
	Title       string
	Description *string
	DueDate     *time.Time
	Status      domain.Status
	Priority    domain.Priority
}

// UpdateTaskInput is a patch: nil fields keep the task's current value.
type UpdateTaskInput struct {
	Title       string
	Description *string
	DueDate     *time.Time
	Status      *domain.Status
	Priority    *domain.Priority
}

type TaskDetail struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	DueDate     *time.Time      `json:"dueDate"`
	Status      domain.Status   `json:"status"`
	Priority    domain.Priority `json:"priority"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Username    string          `json:"username"`
}

// Create stores a new task owned by the caller.
func (s *TaskService) Create(ctx context.Context, input CreateTaskInput, userID uuid.UUID) (*domain.Task, error) {
	if input.Title == "" || len(input.Title) > domain.MaxTitleLength {
		return nil, ErrInvalidTitle
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	description := ""
	if input.Description != nil {
		description = *input.Description
	}

	task := &domain.Task{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: description,
		DueDate:     input.DueDate,
		Status:      input.Status,
		Priority:    input.Priority,
		UserID:      userID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// List runs the filter/sort/paginate pipeline over a full snapshot of tasks.
func (s *TaskService) List(ctx context.Context, query TaskQuery) ([]TaskSummary, error) {
	tasks, err := s.taskRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return runTaskQuery(tasks, query), nil
}

// GetByID returns full task detail, including the owner's username. Only the
// owner may read it.
func (s *TaskService) GetByID(ctx context.Context, taskID, userID uuid.UUID) (*TaskDetail, error) {
	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !task.IsOwnedBy(userID) {
		return nil, ErrForbidden
	}

	return &TaskDetail{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Status:      task.Status,
		Priority:    task.Priority,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		Username:    task.User.Username,
	}, nil
}

// Update applies a patch to an owned task. When the patch carries no title,
// no field is changed at all; the other fields are only applied alongside a
// valid title.
func (s *TaskService) Update(ctx context.Context, taskID, userID uuid.UUID, input UpdateTaskInput) (*domain.Task, error) {
	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !task.IsOwnedBy(userID) {
		return nil, ErrForbidden
	}

	if input.Title != "" {
		if len(input.Title) > domain.MaxTitleLength {
			return nil, ErrInvalidTitle
		}

		task.Title = input.Title
		if input.Description != nil {
			task.Description = *input.Description
		}
		if input.DueDate != nil {
			task.DueDate = input.DueDate
		}
		if input.Status != nil {
			task.Status = *input.Status
		}
		if input.Priority != nil {
			task.Priority = *input.Priority
		}
	}

	task.UpdatedAt = time.Now()
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// Delete removes an owned task. A missing task or one owned by someone else
// yields false rather than an error.
func (s *TaskService) Delete(ctx context.Context, taskID, userID uuid.UUID) (bool, error) {
	task, err := s.getTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return false, nil
		}
		return false, err
	}

	if !task.IsOwnedBy(userID) {
		return false, nil
	}

	if err := s.taskRepo.Delete(ctx, task); err != nil {
		return false, err
	}
	return true, nil
}

func (s *TaskService) getTask(ctx context.Context, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}
