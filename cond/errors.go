package cond

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the only error kind in this package. It is returned,
// wrapped in an *ArgumentError, by the strict builders In and Find.
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError describes input a strict builder could not use.
type ArgumentError struct {
	Op     string // builder name, e.g. "In"
	Column string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("cond.%s %q: %v: %s", e.Op, e.Column, ErrInvalidArgument, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidArgument.
func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}
