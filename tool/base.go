package tool

import (
	"context"
	"sync"

	"github.com/hakkenlabs/toolgate/schema"
)

// Executor is the typed execution function backing a Base tool.
type Executor[Req any] func(ctx context.Context, req *Req) (schema.ToolOutput, error)

// Base provides a generic Tool implementation for typed tools. It
// centralizes the identity/declaration plumbing so concrete tools only
// supply a request type and an executor function.
//
// Type parameter Req is the tool's input struct; json tags on its fields
// must match the property names in the parameter schema.
type Base[Req any] struct {
	name        string
	description string
	decl        Declaration
	executor    Executor[Req]

	mu     sync.RWMutex
	status string
}

// NewBase creates a typed tool from a name, description, parameter schema
// and executor function.
func NewBase[Req any](name, description string, params *Schema, executor Executor[Req]) *Base[Req] {
	return &Base[Req]{
		name:        name,
		description: description,
		decl: Declaration{
			Name:        name,
			Description: description,
			Parameters:  params,
		},
		executor: executor,
	}
}

// Name implements Tool.
func (b *Base[Req]) Name() string { return b.name }

// Description implements Tool.
func (b *Base[Req]) Description() string { return b.description }

// InputModel implements Tool. It returns a fresh *Req for the registry to
// decode into.
func (b *Base[Req]) InputModel() any { return new(Req) }

// Declaration implements Tool.
func (b *Base[Req]) Declaration() Declaration { return b.decl }

// Execute implements Tool. The registry guarantees input is the *Req
// produced by InputModel and validated; anything else is a programming
// error reported in-band.
func (b *Base[Req]) Execute(ctx context.Context, input any) (schema.ToolOutput, error) {
	req, ok := input.(*Req)
	if !ok {
		return schema.Failuref("tool %q received input of unexpected type %T", b.name, input), nil
	}
	return b.executor(ctx, req)
}

// Status implements Tool.
func (b *Base[Req]) Status() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.status
}

// SetStatus updates the progress string reported by Status. Executors may
// call it at any point during a run.
func (b *Base[Req]) SetStatus(status string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = status
}
