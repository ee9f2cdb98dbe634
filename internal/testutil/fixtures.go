package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dom/task-manager/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username           string
	email              string
	password           string
	refreshToken       string
	refreshTokenExpiry time.Time
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		username:           fmt.Sprintf("testuser_%s", suffix),
		email:              fmt.Sprintf("testuser_%s@example.com", suffix),
		password:           "Password1!",
		refreshToken:       fmt.Sprintf("refresh_%s", uuid.New().String()),
		refreshTokenExpiry: time.Now().UTC().Add(7 * 24 * time.Hour),
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithRefreshToken sets the stored refresh token
func (b *UserBuilder) WithRefreshToken(token string) *UserBuilder {
	b.refreshToken = token
	return b
}

// WithRefreshTokenExpiry sets the stored refresh token expiry
func (b *UserBuilder) WithRefreshTokenExpiry(expiry time.Time) *UserBuilder {
	b.refreshTokenExpiry = expiry
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:                    uuid.New(),
		Username:              b.username,
		Email:                 b.email,
		PasswordHash:          string(hashedPassword),
		RefreshToken:          b.refreshToken,
		RefreshTokenExpiresAt: b.refreshTokenExpiry,
		CreatedAt:             time.Now(),
		UpdatedAt:             time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
}

// BuildAndAuthenticate creates a user via the API and returns it together
// with an access token.
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"username":        b.username,
		"email":           b.email,
		"password":        b.password,
		"confirmPassword": b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	user, err := ts.Repos.User.GetByUsernameOrEmail(context.Background(), b.username)
	if err != nil {
		t.Fatalf("failed to load registered user: %v", err)
	}

	return user, authResp.AccessToken
}

// TaskBuilder creates test tasks with a builder pattern
type TaskBuilder struct {
	owner       *domain.User
	title       string
	description string
	dueDate     *time.Time
	status      domain.Status
	priority    domain.Priority
	createdAt   time.Time
}

// NewTaskBuilder creates a new TaskBuilder with default values
func NewTaskBuilder() *TaskBuilder {
	return &TaskBuilder{
		title:     fmt.Sprintf("task_%s", uuid.New().String()[:8]),
		status:    domain.StatusPending,
		priority:  domain.PriorityMedium,
		createdAt: time.Now(),
	}
}

// WithOwner sets the owning user
func (b *TaskBuilder) WithOwner(user *domain.User) *TaskBuilder {
	b.owner = user
	return b
}

// WithTitle sets the title
func (b *TaskBuilder) WithTitle(title string) *TaskBuilder {
	b.title = title
	return b
}

// WithDescription sets the description
func (b *TaskBuilder) WithDescription(description string) *TaskBuilder {
	b.description = description
	return b
}

// WithDueDate sets the due date
func (b *TaskBuilder) WithDueDate(dueDate time.Time) *TaskBuilder {
	b.dueDate = &dueDate
	return b
}

// WithStatus sets the status
func (b *TaskBuilder) WithStatus(status domain.Status) *TaskBuilder {
	b.status = status
	return b
}

// WithPriority sets the priority
func (b *TaskBuilder) WithPriority(priority domain.Priority) *TaskBuilder {
	b.priority = priority
	return b
}

// WithCreatedAt sets the creation timestamp
func (b *TaskBuilder) WithCreatedAt(createdAt time.Time) *TaskBuilder {
	b.createdAt = createdAt
	return b
}

// Build creates the task in the database
func (b *TaskBuilder) Build(t *testing.T, db *gorm.DB) *domain.Task {
	t.Helper()

	if b.owner == nil {
		user, _ := NewUserBuilder().Build(t, db)
		b.owner = user
	}

	task := &domain.Task{
		ID:          uuid.New(),
		Title:       b.title,
		Description: b.description,
		DueDate:     b.dueDate,
		Status:      b.status,
		Priority:    b.priority,
		UserID:      b.owner.ID,
		CreatedAt:   b.createdAt,
		UpdatedAt:   b.createdAt,
	}

	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	return task
}
