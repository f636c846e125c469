package user

import "errors"

var (
	ErrInvalidToken            = errors.New("invalid token")
	ErrInvalidRole             = errors.New("invalid role")
	ErrAdminAccessRequired     = errors.New("admin access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
