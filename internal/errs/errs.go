// Package errs classifies pipeline failures into the categories that
// drive retry and dead-lettering decisions, building on the generic
// retryable/non-retryable split in pkg/util.
package errs

import (
	"fmt"

	"notifyhub/pkg/util"
)

// Category is the coarse bucket a failure falls into.
type Category string

const (
	// CategoryValidation marks a malformed or schema-invalid event.
	// Never retried; the message is acked and dropped or dead-lettered
	// immediately.
	CategoryValidation Category = "validation"

	// CategoryMissingReference marks a reference to a user, template,
	// or other row that does not exist. Treated as non-retryable: a
	// missing row won't appear by retrying the same message.
	CategoryMissingReference Category = "missing_reference"

	// CategoryTransient marks an infrastructure blip — a dropped
	// connection, a timeout — that is expected to clear on retry.
	CategoryTransient Category = "transient"

	// CategoryTransport marks a delivery adapter failure (the email,
	// SMS, push, or in-app send itself failed). Retryable up to the
	// channel's attempt budget.
	CategoryTransport Category = "transport"

	// CategoryTerminal marks a failure that exhausted its retry budget
	// and is being moved to the dead-letter queue.
	CategoryTerminal Category = "terminal"
)

// Error wraps an underlying error with the category the pipeline uses
// to decide whether to retry it.
type Error struct {
	Category Category
	Reason   string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Category, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether a worker should retry the operation that
// produced e, rather than dead-lettering it immediately.
func (e *Error) Retryable() bool {
	switch e.Category {
	case CategoryTransient, CategoryTransport:
		return true
	default:
		return false
	}
}

// Classify wraps err with the category pkg/util's generic classifier
// assigns it.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	retryable, reason := util.IsRetryableError(err)
	if retryable {
		return &Error{Category: CategoryTransient, Reason: reason, Err: err}
	}
	if reason == "not_found" {
		return &Error{Category: CategoryMissingReference, Reason: reason, Err: err}
	}
	return &Error{Category: CategoryValidation, Reason: reason, Err: err}
}

// Validation wraps err as a non-retryable schema/content violation.
func Validation(reason string, err error) *Error {
	return &Error{Category: CategoryValidation, Reason: reason, Err: err}
}

// Transport wraps err as a retryable delivery-adapter failure.
func Transport(reason string, err error) *Error {
	return &Error{Category: CategoryTransport, Reason: reason, Err: err}
}

// Terminal wraps err as a failure that has exhausted its retry budget.
func Terminal(reason string, err error) *Error {
	return &Error{Category: CategoryTerminal, Reason: reason, Err: err}
}
