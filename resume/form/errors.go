package form

import (
	"errors"
	"strings"
)

var (
	// ErrUnknownField indicates a field name the record does not have.
	ErrUnknownField = errors.New("unknown field")

	// ErrUnknownCategory indicates a list category the record does not have.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrWrongKind indicates an object operation on a scalar list or the reverse.
	ErrWrongKind = errors.New("operation does not match list kind")

	// ErrIndexOutOfRange indicates a list index outside the current bounds.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrLastEntry indicates removal of the only row of a never-empty list.
	ErrLastEntry = errors.New("list must keep at least one entry")

	// ErrNotEditing indicates a mutation after submit without reopening.
	ErrNotEditing = errors.New("form is not in editing state")

	// ErrMissingRequired indicates required fields were blank at submit.
	ErrMissingRequired = errors.New("missing required fields")
)

// RequiredError lists the required fields that were blank at submit.
type RequiredError struct {
	Fields []string
}

func (e *RequiredError) Error() string {
	return ErrMissingRequired.Error() + ": " + strings.Join(e.Fields, ", ")
}

func (e *RequiredError) Unwrap() error {
	return ErrMissingRequired
}
