// Package schema defines the typed envelopes for tool input and output.
// Input decoding is strict: arguments a tool never declared are rejected
// outright rather than silently dropped, so a caller hallucinating an
// argument name is caught before execution.
package schema

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Validator is implemented by input types that carry semantic checks
// beyond what decoding can express (required values, ranges, etc).
// It runs after DecodeStrict succeeds.
type Validator interface {
	Validate() error
}

// ValidationError reports that a raw argument map failed to decode or
// validate against a tool's declared input model. Execution must never
// proceed past one of these.
type ValidationError struct {
	Tool  string
	Cause error
}

func (e *ValidationError) Error() string {
	if e.Tool == "" {
		return fmt.Sprintf("input validation failed: %v", e.Cause)
	}
	return fmt.Sprintf("input validation failed for tool %q: %v", e.Tool, e.Cause)
}

func (e *ValidationError) Unwrap() error { return e.Cause }

// DecodeStrict decodes a raw argument map into the typed input struct out.
// Unknown fields and type mismatches are hard failures. Field names match
// json tags, the same names the tool's schema declares.
func DecodeStrict(args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		TagName:     "json",
		ErrorUnused: true, // undeclared fields are a hard failure, not noise
	})
	if err != nil {
		return &ValidationError{Cause: err}
	}
	if err := dec.Decode(args); err != nil {
		return &ValidationError{Cause: err}
	}
	if v, ok := out.(Validator); ok {
		if err := v.Validate(); err != nil {
			return &ValidationError{Cause: err}
		}
	}
	return nil
}
