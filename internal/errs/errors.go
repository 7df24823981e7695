// Package errs classifies the two error shapes the engine can surface:
// rejections that happen before an order ever reaches a book, and internal
// invariant violations that should never happen given validated input.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// ValidationError is returned when an order fails construction-time
// validation. It is a rejection, distinct from cancellation: the order
// never reaches a book.
type ValidationError struct {
	msg   string
	cause error
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{msg: msg, cause: errors.New(msg)}
}

func NewValidationf(format string, args ...any) *ValidationError {
	msg := fmt.Sprintf(format, args...)
	return &ValidationError{msg: msg, cause: errors.New(msg)}
}

func (e *ValidationError) Error() string { return e.msg }
func (e *ValidationError) Unwrap() error { return e.cause }

// StackTrace exposes the underlying pkg/errors stack, grounded on
// MuhammadChandra19-exchange's ErrorTracer.StackTrace pattern.
func (e *ValidationError) StackTrace() errors.StackTrace {
	type stackTracer interface{ StackTrace() errors.StackTrace }
	if st, ok := e.cause.(stackTracer); ok {
		return st.StackTrace()
	}
	return nil
}

// InvariantError signals a defect: state that validated input should never
// be able to produce. It is recovered from a panic at the book boundary and
// never expected in normal operation.
type InvariantError struct {
	msg   string
	cause error
}

func NewInvariant(msg string) *InvariantError {
	return &InvariantError{msg: msg, cause: errors.New(msg)}
}

func NewInvariantf(format string, args ...any) *InvariantError {
	msg := fmt.Sprintf(format, args...)
	return &InvariantError{msg: msg, cause: errors.New(msg)}
}

func (e *InvariantError) Error() string { return "invariant violation: " + e.msg }
func (e *InvariantError) Unwrap() error { return e.cause }

// Recover turns a panic carrying an *InvariantError into a returned error.
// Any other panic value is re-raised; this function only swallows the
// defect class it knows how to classify.
func Recover(target *error) {
	if r := recover(); r != nil {
		if ie, ok := r.(*InvariantError); ok {
			*target = ie
			return
		}
		panic(r)
	}
}
