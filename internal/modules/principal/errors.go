package principal

import "errors"

var ErrResolveFailed = errors.New("principal resolution failed")
