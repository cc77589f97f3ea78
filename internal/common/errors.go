// Package common defines sentinel errors shared by the directory stores.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrorInvalidArgument reports an absent entity argument. It is raised
	// before any I/O is attempted.
	ErrorInvalidArgument = errors.New("invalid argument")
)
