package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email is already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("not authenticated")
	ErrForbidden          = errors.New("access denied")
	ErrConflict           = errors.New("conflict with current state")

	// Report export pipeline. Handlers report these with the originating
	// cause attached; an export is never retried automatically.
	ErrUnknownReportKind = errors.New("unknown report kind")
	ErrReportBuild       = errors.New("report build failed")
	ErrReportRender      = errors.New("report render failed")
)
