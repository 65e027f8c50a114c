package expr

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind tags the four construction/lookup/comparison error categories the
// expression algebra can raise. Matching itself never raises an ErrorKind;
// it only ever yields zero or more results.
type ErrorKind string

const (
	// ValueErr covers arity mismatches, illegal wildcard parameters and
	// other structurally invalid but well-typed constructions.
	ValueErr ErrorKind = "ValueError"
	// TypeErr covers flag combinations that don't type-check, such as
	// one-identity on a fixed-arity operator.
	TypeErr ErrorKind = "TypeError"
	// IndexErr covers out-of-range position-path lookups.
	IndexErr ErrorKind = "IndexError"
	// CompareErr covers a dynamic ordering comparison against a value that
	// is not an Expression.
	CompareErr ErrorKind = "ComparisonError"
)

// ConstructionError is returned by every constructor and lookup function in
// this package that can fail. Construction errors are always raised
// immediately: the invalid expression never exists.
type ConstructionError struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *ConstructionError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *ConstructionError) Unwrap() error { return e.cause }

func newValueError(format string, args ...interface{}) error {
	return &ConstructionError{Kind: ValueErr, Message: fmt.Sprintf(format, args...)}
}

func newTypeError(format string, args ...interface{}) error {
	return &ConstructionError{Kind: TypeErr, Message: fmt.Sprintf(format, args...)}
}

func newIndexError(format string, args ...interface{}) error {
	return &ConstructionError{Kind: IndexErr, Message: fmt.Sprintf(format, args...)}
}

func newComparisonError(format string, args ...interface{}) error {
	return &ConstructionError{Kind: CompareErr, Message: fmt.Sprintf(format, args...)}
}

// wrapConstraintPanic turns a recovered panic from a user-supplied
// constraint predicate into an error carrying the original panic value as
// its cause, so callers can recover the original failure with errors.Cause.
func wrapConstraintPanic(r interface{}) error {
	var cause error
	if err, ok := r.(error); ok {
		cause = err
	} else {
		cause = fmt.Errorf("%v", r)
	}
	return errors.Wrapf(cause, "constraint predicate panicked")
}

// IsValueError reports whether err is a ValueErr construction error.
func IsValueError(err error) bool { return hasKind(err, ValueErr) }

// IsTypeError reports whether err is a TypeErr construction error.
func IsTypeError(err error) bool { return hasKind(err, TypeErr) }

// IsIndexError reports whether err is an IndexErr lookup error.
func IsIndexError(err error) bool { return hasKind(err, IndexErr) }

// IsComparisonError reports whether err is a CompareErr dynamic-comparison
// error.
func IsComparisonError(err error) bool { return hasKind(err, CompareErr) }

func hasKind(err error, kind ErrorKind) bool {
	var ce *ConstructionError
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}
