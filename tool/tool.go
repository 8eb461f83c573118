// Package tool defines the contract every agent capability implements,
// plus the registry that maps tool identities to implementations and
// mediates validated execution.
package tool

import (
	"context"

	"github.com/hakkenlabs/toolgate/schema"
)

// Tool is the capability contract. Implementations must be stateless with
// respect to individual calls and safe for concurrent use.
type Tool interface {
	// Name returns the unique, stable identity for this tool. Never empty.
	// It is the sole key into the registry and into permission storage.
	Name() string

	// Description returns a human-readable description for the model catalog.
	Description() string

	// InputModel returns a freshly allocated pointer to the tool's typed
	// input struct, or nil if the tool accepts an open argument map.
	// A nil model bypasses strict validation; registries log it at
	// registration so the gap stays visible.
	InputModel() any

	// Declaration returns the structured schema document for this tool.
	Declaration() Declaration

	// Execute runs the tool with input already validated against the
	// tool's input model (or the raw argument map when InputModel is nil).
	// Internal failures must come back as a failed ToolOutput; the error
	// return is reserved for infrastructure concerns such as context
	// cancellation.
	Execute(ctx context.Context, input any) (schema.ToolOutput, error)

	// Status returns an optional progress string. It must be safe to call
	// at any time, including before or during Execute. Empty by default.
	Status() string
}
