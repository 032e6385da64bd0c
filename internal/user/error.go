package user

import "errors"

var (
	ErrInvalidEmail   = errors.New("invalid email address")
	ErrMissingSecret  = errors.New("JWT_SECRET is not set")
	ErrInvalidToken   = errors.New("invalid token")
	ErrUnexpectedSign = errors.New("unexpected signing method")
)
