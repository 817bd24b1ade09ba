package payment

import (
	"fmt"
	"time"
)

// ValidateTransition validates a requested status transition. PAID is
// terminal; OVERDUE never moves back to PENDING.
func ValidateTransition(from, to Status) error {
	switch from {
	case StatusPending:
		if to == StatusOverdue || to == StatusPaid {
			return nil
		}
	case StatusOverdue:
		if to == StatusPaid {
			return nil
		}
	case StatusPaid:
		return ErrAlreadyPaid
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// ValidateMarkPaid validates the inputs of an explicit mark-paid action.
func ValidateMarkPaid(paidAmount int, method Method, paidDate time.Time) error {
	if paidAmount < 1 {
		return fmt.Errorf("%w: paid amount must be positive", ErrInvalidInput)
	}
	if !ValidMethod(method) {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, method)
	}
	if paidDate.IsZero() {
		return fmt.Errorf("%w: paid date required", ErrInvalidInput)
	}
	return nil
}
