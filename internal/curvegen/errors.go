package curvegen

import "errors"

// ErrNegativeInput is returned when a physical parameter is negative.
var ErrNegativeInput = errors.New("curvegen: negative input")
