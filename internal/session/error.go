package session

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidUser     = errors.New("session: user id is required")

	ErrCheckoutInProgress = errors.New("checkout already in progress")
)
