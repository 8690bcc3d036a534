package auth

import "errors"

var (
	ErrNotFound        = errors.New("auth: not found")
	ErrDuplicate       = errors.New("auth: email or username already registered")
	ErrMissingFields   = errors.New("auth: missing required fields")
	ErrUserNotFound    = errors.New("auth: user not found")
	ErrInvalidPassword = errors.New("auth: invalid password")

	ErrTokenMissing   = errors.New("auth: token missing")
	ErrTokenMalformed = errors.New("auth: token malformed")
	ErrTokenExpired   = errors.New("auth: token expired")
	ErrTokenSignature = errors.New("auth: token signature invalid")
)
