package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// InternalError carries a developer message, a user-facing hint and optional
// reportable details alongside the wrapped cause.
type InternalError struct {
	cause             error
	message           string
	hint              string
	reportableDetails map[string]any
}

func (e *InternalError) Error() string {
	switch {
	case e.cause != nil && e.message != "":
		return fmt.Sprintf("%s: %s", e.message, e.cause.Error())
	case e.cause != nil:
		return e.cause.Error()
	default:
		return e.message
	}
}

func (e *InternalError) Unwrap() error {
	return e.cause
}

// Hint returns the user-facing hint attached anywhere in err's chain
func Hint(err error) string {
	var ie *InternalError
	if errors.As(err, &ie) {
		return ie.hint
	}
	return ""
}

// ReportableDetails returns the safe-to-expose details attached to err, if any
func ReportableDetails(err error) map[string]any {
	var ie *InternalError
	if errors.As(err, &ie) {
		return ie.reportableDetails
	}
	return nil
}

// ErrorBuilder assembles an InternalError; Mark finalizes it with a sentinel
type ErrorBuilder struct {
	err *InternalError
}

// NewError starts a builder with a developer message
func NewError(message string) *ErrorBuilder {
	return &ErrorBuilder{err: &InternalError{message: message}}
}

// NewErrorf starts a builder with a formatted developer message
func NewErrorf(format string, args ...any) *ErrorBuilder {
	return NewError(fmt.Sprintf(format, args...))
}

// WithError starts a builder wrapping an existing cause
func WithError(err error) *ErrorBuilder {
	return &ErrorBuilder{err: &InternalError{cause: err}}
}

func (b *ErrorBuilder) WithMessage(message string) *ErrorBuilder {
	b.err.message = message
	return b
}

func (b *ErrorBuilder) WithMessagef(format string, args ...any) *ErrorBuilder {
	b.err.message = fmt.Sprintf(format, args...)
	return b
}

func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.err.hint = hint
	return b
}

func (b *ErrorBuilder) WithReportableDetails(details map[string]any) *ErrorBuilder {
	b.err.reportableDetails = details
	return b
}

// Mark tags the built error with a sentinel so callers can classify it with
// errors.Is, and attaches a stack trace at the call site.
func (b *ErrorBuilder) Mark(sentinel error) error {
	return errors.Mark(errors.WithStackDepth(b.err, 1), sentinel)
}
