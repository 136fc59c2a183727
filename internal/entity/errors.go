package entity

import "errors"

var (
	ErrDuplicateUser      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrInvalidFile        = errors.New("invalid file type")
	ErrFileTooLarge       = errors.New("file too large")
	ErrThumbnailFailed    = errors.New("thumbnail generation failed")
	ErrProtectedUser      = errors.New("superuser accounts cannot be modified")
)
