package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dom/task-manager/internal/api/middleware"
	"github.com/dom/task-manager/internal/domain"
	"github.com/dom/task-manager/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Status      *int       `json:"status"`
	Priority    *int       `json:"priority"`
}

type UpdateTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Status      *int       `json:"status"`
	Priority    *int       `json:"priority"`
}

type CreateTaskResponse struct {
	Title    string          `json:"title"`
	Status   domain.Status   `json:"status"`
	Priority domain.Priority `json:"priority"`
}

type UpdateTaskResponse struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	DueDate     *time.Time      `json:"dueDate"`
	Status      domain.Status   `json:"status"`
	Priority    domain.Priority `json:"priority"`
}

type DeleteTaskResponse struct {
	Deleted bool `json:"deleted"`
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	input := service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      domain.StatusPending,
		Priority:    domain.PriorityMedium,
	}
	if req.Status != nil {
		input.Status = domain.Status(*req.Status)
	}
	if req.Priority != nil {
		input.Priority = domain.Priority(*req.Priority)
	}

	task, err := h.taskService.Create(r.Context(), input, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTitle):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, service.ErrUserNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			log.Error().Err(err).Msg("failed to create task")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, CreateTaskResponse{
		Title:    task.Title,
		Status:   task.Status,
		Priority: task.Priority,
	})
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	query := parseTaskQuery(r)

	tasks, err := h.taskService.List(r.Context(), query)
	if err != nil {
		log.Error().Err(err).Msg("failed to list tasks")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid task id", http.StatusBadRequest)
		return
	}

	detail, err := h.taskService.GetByID(r.Context(), taskID, userID)
	if err != nil {
		h.writeTaskError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid task id", http.StatusBadRequest)
		return
	}

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	input := service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := domain.Priority(*req.Priority)
		input.Priority = &priority
	}

	task, err := h.taskService.Update(r.Context(), taskID, userID, input)
	if err != nil {
		h.writeTaskError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, UpdateTaskResponse{
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Status:      task.Status,
		Priority:    task.Priority,
	})
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid task id", http.StatusBadRequest)
		return
	}

	deleted, err := h.taskService.Delete(r.Context(), taskID, userID)
	if err != nil {
		log.Error().Err(err).Str("task_id", taskID.String()).Msg("failed to delete task")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, DeleteTaskResponse{Deleted: deleted})
}

func (h *TaskHandler) writeTaskError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, service.ErrInvalidTitle):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Error().Err(err).Msg("task operation failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// parseTaskQuery reads the list parameters from the query string. Values that
// fail to parse are dropped, matching the pipeline's lenient filters.
func parseTaskQuery(r *http.Request) service.TaskQuery {
	q := r.URL.Query()

	query := service.TaskQuery{
		Status:     q.Get("status"),
		SortBy:     q.Get("sortBy"),
		Descending: q.Get("desc") == "true",
	}

	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		query.Page = v
	}
	if v, err := strconv.Atoi(q.Get("pageSize")); err == nil {
		query.PageSize = v
	}
	if v, err := strconv.Atoi(q.Get("priority")); err == nil {
		query.Priority = &v
	}
	if raw := q.Get("dueDate"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			query.DueDate = &t
		} else if t, err := time.Parse("2006-01-02", raw); err == nil {
			query.DueDate = &t
		}
	}

	return query
}
