package service

import "errors"

// ErrNotStarted is returned when a snapshot is requested before Start.
var ErrNotStarted = errors.New("service not started")
