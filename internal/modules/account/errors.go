package account

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrBlankField      = errors.New("username and names cannot be blank")
)
