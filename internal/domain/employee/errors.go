package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrNameRequired     = errors.New("employee name is required")
)
