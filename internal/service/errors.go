package service

import "errors"

var (
	ErrUserExists          = errors.New("user with the same username or email already exists")
	ErrInvalidUsername     = errors.New("username is required")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrWeakPassword        = errors.New("password must be at least 8 characters long, contain at least one uppercase letter, one lowercase letter, one number and one special character")
	ErrInvalidCredentials  = errors.New("invalid user or password")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	ErrTaskNotFound = errors.New("task not found")
	ErrForbidden    = errors.New("you do not have permission to access this task")
	ErrInvalidTitle = errors.New("title is required and must be 50 characters or fewer")
	ErrUserNotFound = errors.New("user not found")
)
