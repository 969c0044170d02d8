package logtree

import "errors"

// ErrConfiguration marks invalid process configuration: unknown severity or
// mode strings, bad output destinations, or a manager install attempted
// outside development mode. Wrap with fmt.Errorf("%w: ...") and test with
// errors.Is.
var ErrConfiguration = errors.New("logtree: invalid configuration")
