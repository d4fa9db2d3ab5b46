package domain

import "errors"

var (
	ErrInputMissing   = errors.New("No log data provided")
	ErrDataFormat     = errors.New("Invalid log data format")
	ErrModelNotFitted = errors.New("model has not been fitted yet")
)
