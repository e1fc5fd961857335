package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Lesson errors
	ErrLessonNotFound = errors.New("lesson not found")
	ErrLessonInUse    = errors.New("lesson referenced by existing orders")

	// Checkout errors
	ErrOrderNotFound        = errors.New("order not found")
	ErrInsufficientCapacity = errors.New("insufficient capacity")
	ErrDuplicateLine        = errors.New("duplicate lesson in checkout lines")

	// Idempotency errors
	ErrIdempotencyConflict = errors.New("idempotency key reused with different request")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
