package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxTitleLength is enforced on both create and update.
const MaxTitleLength = 50

type Status int

const (
	StatusPending Status = iota
	StatusInProgress
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "InProgress"
	case StatusCompleted:
		return "Completed"
	}
	return "Unknown"
}

func (s Status) IsValid() bool {
	return s >= StatusPending && s <= StatusCompleted
}

// ParseStatus matches status names exactly, case-sensitive. Unknown names
// report false so callers can treat them as "no filter".
func ParseStatus(name string) (Status, bool) {
	switch name {
	case "Pending":
		return StatusPending, true
	case "InProgress":
		return StatusInProgress, true
	case "Completed":
		return StatusCompleted, true
	}
	return 0, false
}

type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	}
	return "Unknown"
}

func (p Priority) IsValid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

// PriorityFromInt maps an integer ordinal to a priority. Out-of-range values
// report false.
func PriorityFromInt(v int) (Priority, bool) {
	p := Priority(v)
	return p, p.IsValid()
}

type Task struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string     `json:"title" gorm:"size:50;not null"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Status      Status     `json:"status" gorm:"not null"`
	Priority    Priority   `json:"priority" gorm:"not null"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	UserID uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	User   User      `json:"-" gorm:"foreignKey:UserID"`
}

// IsOwnedBy is the ownership guard applied before task reads, updates and
// deletes.
func (t *Task) IsOwnedBy(userID uuid.UUID) bool {
	return t.UserID == userID
}
