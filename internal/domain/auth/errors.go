package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid name or password")
	ErrInvalidToken       = errors.New("invalid or missing token")
	ErrAdminRequired      = errors.New("admin privilege required")
	ErrForbidden          = errors.New("not allowed to access this resource")
)
