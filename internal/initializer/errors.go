package initializer

import "errors"

var (
	// ErrInvalidState indicates a lifecycle step was invoked out of order.
	ErrInvalidState = errors.New("template step out of order")

	// ErrPanic indicates a lifecycle step panicked and was recovered.
	ErrPanic = errors.New("initialization panicked")
)
