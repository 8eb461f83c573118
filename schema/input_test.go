package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type readFileInput struct {
	Path  string `json:"path"`
	Limit int    `json:"limit"`
}

type validatedInput struct {
	Path string `json:"path"`
}

func (v *validatedInput) Validate() error {
	if v.Path == "" {
		return errors.New("path must not be empty")
	}
	return nil
}

func TestDecodeStrict_ValidArguments(t *testing.T) {
	var in readFileInput
	err := DecodeStrict(map[string]any{"path": "main.go", "limit": 100}, &in)

	require.NoError(t, err)
	assert.Equal(t, "main.go", in.Path)
	assert.Equal(t, 100, in.Limit)
}

func TestDecodeStrict_UnknownFieldRejected(t *testing.T) {
	// A caller hallucinating an argument name must fail loudly, not have
	// the extra field silently dropped.
	var in readFileInput
	err := DecodeStrict(map[string]any{"path": "main.go", "recursive": true}, &in)

	require.Error(t, err)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "recursive")
}

func TestDecodeStrict_WrongTypeRejected(t *testing.T) {
	var in readFileInput
	err := DecodeStrict(map[string]any{"path": "main.go", "limit": "many"}, &in)

	require.Error(t, err)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestDecodeStrict_ValidatorHookRuns(t *testing.T) {
	var in validatedInput
	err := DecodeStrict(map[string]any{"path": ""}, &in)

	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Cause.Error(), "path must not be empty")
}

func TestDecodeStrict_MissingOptionalFieldOK(t *testing.T) {
	var in readFileInput
	err := DecodeStrict(map[string]any{"path": "main.go"}, &in)

	require.NoError(t, err)
	assert.Zero(t, in.Limit)
}

func TestValidationError_IncludesToolName(t *testing.T) {
	err := &ValidationError{Tool: "read_file", Cause: errors.New("bad input")}
	assert.Contains(t, err.Error(), `"read_file"`)
	assert.Equal(t, "bad input", errors.Unwrap(err).Error())
}
