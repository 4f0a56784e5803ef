package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrWrongRole          = errors.New("account does not have the required role")
	ErrPortalNotFound     = errors.New("portal not found")
	ErrSessionInvalid     = errors.New("session is not valid")
)
