package services

import "errors"

// Sentinel errors returned by the lead and admin-access services. Controllers
// translate these to HTTP status codes; details are attached by wrapping, e.g.
// fmt.Errorf("%w: email is required", ErrValidation).
var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("not found")
	ErrInvalidStatus = errors.New("invalid lead status")
	ErrConflict      = errors.New("already exists")
	ErrForbidden     = errors.New("forbidden")
)
