package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrSchemaUnavailable  = errors.New("schema unavailable")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveUser       = errors.New("user inactive")
)
