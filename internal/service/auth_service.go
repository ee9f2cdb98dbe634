package service

import (
	"context"
	"errors"
	"time"
	"unicode"

	"github.com/dom/task-manager/internal/domain"
	"github.com/dom/task-manager/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// dummyPasswordHash is compared against when the user lookup fails so that
// login takes the same time whether the username or the password was wrong.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

const minPasswordLength = 8

type AuthService struct {
	userRepo repository.UserRepository
	tokens   *TokenIssuer
}

func NewAuthService(userRepo repository.UserRepository, tokens *TokenIssuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

type LoginInput struct {
	UsernameOrEmail string
	Password        string
}

type AuthResult struct {
	User        *domain.User
	AccessToken string
}

// Register creates a new user and returns a fresh access token. Nothing is
// persisted unless every validation passes.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if input.Username == "" {
		return nil, ErrInvalidUsername
	}

	// Best-effort existence check; the unique indexes on username and email
	// are the real backstop against a concurrent insert.
	if _, err := s.userRepo.GetByUsernameOrEmail(ctx, input.Username); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.GetByUsernameOrEmail(ctx, input.Email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	if !isPasswordComplex(input.Password) {
		return nil, ErrWeakPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:                    uuid.New(),
		Username:              input.Username,
		Email:                 input.Email,
		PasswordHash:          string(hashedPassword),
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: time.Now().UTC().Add(refreshTokenTTL),
		CreatedAt:             time.Now(),
		UpdatedAt:             time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueAccessToken(user)
}

// Login authenticates by username or email. A missing user and a wrong
// password are indistinguishable to the caller, and a bcrypt comparison runs
// in both cases.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.GetByUsernameOrEmail(ctx, input.UsernameOrEmail)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	passwordHash := dummyPasswordHash
	if err == nil {
		passwordHash = user.PasswordHash
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(input.Password))
	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	// The refresh token is not rotated here; it is written at registration
	// only.
	return s.issueAccessToken(user)
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, userID uuid.UUID, refreshToken string) (*AuthResult, error) {
	user, err := s.validateRefreshToken(ctx, userID, refreshToken)
	if err != nil {
		return nil, err
	}
	return s.issueAccessToken(user)
}

// ValidateToken verifies an access token's signature and expiry. Used by the
// HTTP auth middleware.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	return s.tokens.Validate(tokenString)
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *AuthService) issueAccessToken(user *domain.User) (*AuthResult, error) {
	accessToken, err := s.tokens.IssueAccessToken(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, AccessToken: accessToken}, nil
}

// validateRefreshToken fails if the user is absent, the presented token does
// not exactly match the stored one, or the stored expiry is at or before now
// (UTC).
func (s *AuthService) validateRefreshToken(ctx context.Context, userID uuid.UUID, refreshToken string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	if user.RefreshToken != refreshToken || !user.RefreshTokenExpiresAt.After(time.Now().UTC()) {
		return nil, ErrInvalidRefreshToken
	}

	return user, nil
}

// isPasswordComplex requires at least 8 characters with one uppercase letter,
// one lowercase letter, one digit and one character that is neither.
func isPasswordComplex(password string) bool {
	if len(password) < minPasswordLength {
		return false
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
		case !unicode.IsLetter(c):
			hasSpecial = true
		}
	}

	return hasUpper && hasLower && hasDigit && hasSpecial
}
