package worksite

import "errors"

var (
	ErrUnknownCatalogType = errors.New("unknown catalog type")
	ErrSiteNameRequired   = errors.New("site name is required")
)
