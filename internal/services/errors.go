package services

import "errors"

// ErrNotFound marks lookups that missed, or hit a row the caller does not
// own. Handlers map it to a 404; everything else a service returns is a
// caller error or an upstream failure.
var ErrNotFound = errors.New("not found")
