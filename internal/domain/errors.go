package domain

import (
	"errors"
	"fmt"
)

// Business-rule errors. These are returned before any state has been touched;
// callers map them to HTTP statuses.
var (
	ErrNotFound            = errors.New("not found")
	ErrUnauthorized        = errors.New("not authorized")
	ErrInvalidState        = errors.New("invalid state")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")

	// ErrStorage wraps infrastructure failures during an atomic unit. When it
	// is returned the whole unit was rolled back; no partial state is visible.
	ErrStorage = errors.New("storage failure")
)

// ValidationError reports malformed input
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// LimitExceededError is returned when a payment exceeds the policy spend cap.
type LimitExceededError struct {
	Spendable  int64 // paise
	Percentage int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("amount exceeds spendable limit of ₹%s (%d%% of balance)",
		FormatPaise(e.Spendable), e.Percentage)
}

// StorageError wraps err so that errors.Is(err, ErrStorage) holds.
func StorageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}
