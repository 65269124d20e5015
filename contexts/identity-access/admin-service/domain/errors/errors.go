package errors

import "errors"

var (
	ErrInvalidAdminInput  = errors.New("invalid admin input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("invalid token or admin not active")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrEmailTaken         = errors.New("admin with this email already exists")
)
