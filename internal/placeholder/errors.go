package placeholder

import "errors"

// ErrInvalidSpec reports a Spec that cannot be rendered.
var ErrInvalidSpec = errors.New("invalid placeholder spec")
