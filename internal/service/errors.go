package service

import "errors"

// Sentinel errors returned by services. Handlers map these onto HTTP
// statuses; anything else is a 500 with the detail kept server-side.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrMalformedInput     = errors.New("malformed input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLockedOut          = errors.New("account temporarily locked")
	ErrNotAuthorized      = errors.New("not authorized")
)
