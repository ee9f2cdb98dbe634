package service

import (
	"sort"
	"time"

	"github.com/dom/task-manager/internal/domain"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// TaskQuery describes the list request: pagination, optional filters and a
// sort key. Invalid filter values are ignored rather than rejected: an
// unparsable status or out-of-range priority simply applies no filter.
type TaskQuery struct {
	Page     int
	PageSize int

	Status   string
	DueDate  *time.Time
	Priority *int

	SortBy     string // "DueDate", "Priority"; anything else sorts by creation time
	Descending bool
}

// TaskSummary is the projection returned by the list pipeline.
type TaskSummary struct {
	Title    string          `json:"title"`
	DueDate  *time.Time      `json:"dueDate"`
	Status   domain.Status   `json:"status"`
	Priority domain.Priority `json:"priority"`
}

func (q *TaskQuery) normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}
}

// runTaskQuery applies the pipeline over a full snapshot, strictly in order:
// filter, sort, skip, take, project.
func runTaskQuery(tasks []*domain.Task, query TaskQuery) []TaskSummary {
	query.normalize()

	filtered := filterTasks(tasks, query)
	sortTasks(filtered, query.SortBy, query.Descending)

	skip := (query.Page - 1) * query.PageSize
	if skip > len(filtered) {
		skip = len(filtered)
	}
	end := skip + query.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	page := filtered[skip:end]

	result := make([]TaskSummary, 0, len(page))
	for _, t := range page {
		result = append(result, TaskSummary{
			Title:    t.Title,
			DueDate:  t.DueDate,
			Status:   t.Status,
			Priority: t.Priority,
		})
	}
	return result
}

func filterTasks(tasks []*domain.Task, query TaskQuery) []*domain.Task {
	filtered := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		filtered = append(filtered, t)
	}

	if query.Status != "" {
		if status, ok := domain.ParseStatus(query.Status); ok {
			filtered = keep(filtered, func(t *domain.Task) bool {
				return t.Status == status
			})
		}
	}

	if query.DueDate != nil {
		filtered = keep(filtered, func(t *domain.Task) bool {
			return t.DueDate != nil && sameDate(*t.DueDate, *query.DueDate)
		})
	}

	if query.Priority != nil {
		if priority, ok := domain.PriorityFromInt(*query.Priority); ok {
			filtered = keep(filtered, func(t *domain.Task) bool {
				return t.Priority == priority
			})
		}
	}

	return filtered
}

func keep(tasks []*domain.Task, pred func(*domain.Task) bool) []*domain.Task {
	out := tasks[:0]
	for _, t := range tasks {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}

func sortTasks(tasks []*domain.Task, sortBy string, descending bool) {
	var less func(a, b *domain.Task) bool
	switch sortBy {
	case "DueDate":
		less = func(a, b *domain.Task) bool {
			return beforeNilFirst(a.DueDate, b.DueDate)
		}
	case "Priority":
		less = func(a, b *domain.Task) bool {
			return a.Priority < b.Priority
		}
	default:
		less = func(a, b *domain.Task) bool {
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		if descending {
			return less(tasks[j], tasks[i])
		}
		return less(tasks[i], tasks[j])
	})
}

// beforeNilFirst orders tasks without a due date ahead of dated ones.
func beforeNilFirst(a, b *time.Time) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	return a.Before(*b)
}

// sameDate compares calendar dates only; time of day is ignored.
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
