package model

import "errors"

var (
	// ErrNoCredentials is returned when the database buffer yields no credentials
	ErrNoCredentials = errors.New("NO_CREDENTIALS")

	// ErrUnknownLayout is returned when the configured database layout has no registered parser
	ErrUnknownLayout = errors.New("UNKNOWN_DATABASE_LAYOUT")
)
