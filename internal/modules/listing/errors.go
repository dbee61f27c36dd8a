package listing

import "errors"

var (
	ErrNotFound    = errors.New("listing not found")
	ErrForbidden   = errors.New("not the listing owner")
	ErrInvalidDate = errors.New("invalid date format")
)
