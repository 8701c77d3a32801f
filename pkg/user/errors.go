package user

import "errors"

var (
	ErrUserExists         = errors.New("username already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or missing token")
	ErrRouteNotFound      = errors.New("route not found")
	ErrEmptyUsername      = errors.New("username must not be empty")
)
