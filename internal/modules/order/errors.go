package order

import "errors"

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrServiceNotFound = errors.New("service not found")
	ErrServiceInactive = errors.New("service is not active")
	ErrPortalNotFound  = errors.New("portal not found")
	ErrForbidden       = errors.New("order belongs to someone else")
)
