// Package fault defines the error taxonomy shared by the brief pipeline.
//
// Three failure classes exist: GenerationError for transport/service
// failures at the generation boundary, ValidationError for contract
// violations in generated output, and RenderError for document or
// browser composition failures. The synthesizer retries the first two
// identically; a RenderError always aborts the run.
package fault

import (
	"errors"
	"fmt"
	"strings"
)

// GenerationError reports a failed call to the text-generation service.
// Status is zero when the failure happened before an HTTP response
// (dial error, timeout). Body carries the service response verbatim.
type GenerationError struct {
	Op     string
	Status int
	Body   string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: generation service returned %d: %s", e.Op, e.Status, e.Body)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: generation failed", e.Op)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ValidationError reports contract violations in generated output.
// Violations holds every failed check, not just the first.
type ValidationError struct {
	Op         string
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %d validation error(s): %s",
		e.Op, len(e.Violations), strings.Join(e.Violations, "; "))
}

// RenderError reports a failure while producing the document artifact,
// either in markup rendering or in browser composition.
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// IsGeneration reports whether err is (or wraps) a GenerationError.
func IsGeneration(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsRender reports whether err is (or wraps) a RenderError.
func IsRender(err error) bool {
	var re *RenderError
	return errors.As(err, &re)
}

// ViolationsOf returns the violation list when err wraps a
// ValidationError, or nil otherwise.
func ViolationsOf(err error) []string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Violations
	}
	return nil
}
