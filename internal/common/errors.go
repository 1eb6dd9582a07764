package common

import "errors"

var (
	// Lookup errors.
	ErrorNotFound = errors.New("not found")

	// Wizard flow errors.
	ErrStepIncomplete = errors.New("step incomplete")
)
