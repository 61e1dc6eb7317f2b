// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal indicates an internal server error.
var ErrInternal = errors.New("internal")
