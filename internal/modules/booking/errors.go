package booking

import "errors"

var (
	ErrListingNotFound     = errors.New("listing not found")
	ErrNotFound            = errors.New("booking not found")
	ErrOwnListing          = errors.New("owner cannot book own listing")
	ErrInvalidDate         = errors.New("invalid date format")
	ErrInvalidRange        = errors.New("start date must be before end date")
	ErrPastDate            = errors.New("start date cannot be in the past")
	ErrConflict            = errors.New("dates unavailable")
	ErrOnlyConfirmEditable = errors.New("only is_confirmed editable")
	ErrFieldNotAllowed     = errors.New("field not editable by renter")
	ErrDeleteForbidden     = errors.New("not allowed to delete this booking")
)
