// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal replaces every failure the client must not see the details of,
// including a posting that could not be written as a whole.
var ErrInternal = errors.New("internal")
