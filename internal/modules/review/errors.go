package review

import "errors"

var (
	ErrInvalidRequest  = errors.New("invalid_request")
	ErrListingNotFound = errors.New("listing not found")
)
