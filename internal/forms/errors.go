package forms

import "errors"

var (
	// ErrInvalidInput indicates a malformed request body or parameter.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotSubmitted indicates the form has no snapshot to render yet.
	ErrNotSubmitted = errors.New("form has not been submitted")

	// ErrRenderFailed indicates the renderer could not produce a document.
	ErrRenderFailed = errors.New("render failed")
)
