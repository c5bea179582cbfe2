package feed

import "errors"

// Sentinel kinds for feed errors.
var (
	ErrBadStatus = errors.New("unexpected feed status")
	ErrMalformed = errors.New("malformed feed response")
)
