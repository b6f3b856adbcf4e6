package billing

import "errors"

var (
	ErrReportGeneration = errors.New("annual report generation failed")
)
