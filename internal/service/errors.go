package service

import "errors"

var (
	ErrDuplicateAccount   = errors.New("user already exist")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoteNotFound       = errors.New("note not found")
)
