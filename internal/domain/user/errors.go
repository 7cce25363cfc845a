package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserEmailExists         = errors.New("email already registered")
	ErrInvalidEmailFormat      = errors.New("invalid email format")
	ErrInvalidPasswordLength   = errors.New("password must be at least 8 characters")
	ErrManagerAccessRequired   = errors.New("manager access required")
	ErrTeamLeadAccessRequired  = errors.New("team lead access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
