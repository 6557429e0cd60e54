package domain

import "errors"

var (
	ErrInvalidID          = errors.New("invalid identifier")
	ErrInvalidText        = errors.New("invalid text value")
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
