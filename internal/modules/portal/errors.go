package portal

import "errors"

var (
	ErrPortalNotFound    = errors.New("portal not found")
	ErrForbidden         = errors.New("portal belongs to another administrator")
	ErrInvalidName       = errors.New("portal name must be 1 to 100 characters")
	ErrPortalHasServices = errors.New("portal still has services")
)
