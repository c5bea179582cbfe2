package resources

import "errors"

var (
	// ErrUnknownSection is returned when an upload targets a section
	// outside the known set.
	ErrUnknownSection = errors.New("unknown resource section")
	// ErrEmptyName is returned when an upload arrives without a usable
	// file name.
	ErrEmptyName = errors.New("empty resource name")
)
