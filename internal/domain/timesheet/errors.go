package timesheet

import "errors"

var (
	ErrInvalidDate   = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidStatus = errors.New("invalid day status")
)
