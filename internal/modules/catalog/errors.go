package catalog

import "errors"

var (
	ErrServiceNotFound  = errors.New("service not found")
	ErrPortalNotFound   = errors.New("portal not found")
	ErrForbidden        = errors.New("service belongs to another administrator's portal")
	ErrInvalidInput     = errors.New("name and description are required")
	ErrServiceHasOrders = errors.New("service has orders")
)
