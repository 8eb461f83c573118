package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/hakkenlabs/toolgate/schema"
)

// Registry maps tool identities to implementations. It is the single entry
// point for validated execution: Run never calls a tool's Execute with
// input that failed validation, and it never lets a tool failure escape as
// anything other than a failed ToolOutput.
type Registry struct {
	registry          map[string]Tool
	requireInputModel bool
	log               *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registration audit messages.
func WithLogger(log *slog.Logger) Option {
	return func(r *Registry) { r.log = log }
}

// WithRequireInputModel makes a nil InputModel a registration error instead
// of an audited escape hatch, so every registered tool is strictly validated.
func WithRequireInputModel() Option {
	return func(r *Registry) { r.requireInputModel = true }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		registry: make(map[string]Tool),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a tool under its identity. Empty and duplicate names are
// rejected: the identity is the sole key into permission storage, so a
// collision would silently merge two tools' trust decisions.
func (r *Registry) Register(t Tool) error {
	name := t.Name()
	if name == "" {
		return fmt.Errorf("tool name must not be empty")
	}
	if _, exists := r.registry[name]; exists {
		return fmt.Errorf("tool %q is already registered", name)
	}
	if t.InputModel() == nil {
		if r.requireInputModel {
			return fmt.Errorf("tool %q declares no input model; registry requires one", name)
		}
		r.log.Warn("tool accepts unvalidated arguments", "tool", name)
	}
	r.registry[name] = t
	return nil
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.registry[name]
	return t, ok
}

// Declarations returns the schema documents for all registered tools,
// sorted by name for a deterministic model-facing catalog.
func (r *Registry) Declarations() []Declaration {
	decls := make([]Declaration, 0, len(r.registry))
	for _, t := range r.registry {
		decls = append(decls, t.Declaration())
	}
	sort.Slice(decls, func(i, j int) bool {
		return decls[i].Name < decls[j].Name
	})
	return decls
}

// Status reports the progress side-channel for a tool.
func (r *Registry) Status(name string) string {
	t, ok := r.registry[name]
	if !ok {
		return fmt.Sprintf("Tool %q not found.", name)
	}
	return t.Status()
}

// Run validates args against the tool's input model and executes it.
// Unknown tools, validation failures and tool faults all come back as a
// failed ToolOutput so the calling conversation loop keeps running; the
// error return is non-nil only when the context is cancelled.
func (r *Registry) Run(ctx context.Context, name string, args map[string]any) (schema.ToolOutput, error) {
	t, ok := r.registry[name]
	if !ok {
		names := make([]string, 0, len(r.registry))
		for n := range r.registry {
			names = append(names, n)
		}
		sort.Strings(names)
		return schema.Failuref("tool %q does not exist; available tools: %v", name, names), nil
	}

	input := any(args)
	if model := t.InputModel(); model != nil {
		if err := validateInput(t, args, model); err != nil {
			declJSON, _ := json.MarshalIndent(t.Declaration(), "", "  ")
			return schema.Failure(
				fmt.Sprintf("%v\n\nExpected schema:\n%s", err, declJSON),
				err.Error(),
			), nil
		}
		input = model
	}

	out, err := runSafely(ctx, t, input)
	if err != nil {
		if ctx.Err() != nil {
			return schema.ToolOutput{}, err
		}
		// Tools should report their own faults in-band; an error return
		// outside cancellation is captured here so the loop survives.
		return schema.Failuref("tool %q failed: %v", name, err), nil
	}

	if verr := out.Validate(); verr != nil {
		return schema.Failuref("tool %q returned a malformed result: %v", name, verr), nil
	}
	return out, nil
}

// validateInput enforces the declaration's required fields, then strictly
// decodes args into the tool's input model.
func validateInput(t Tool, args map[string]any, model any) error {
	if params := t.Declaration().Parameters; params != nil {
		for _, field := range params.Required {
			if _, present := args[field]; !present {
				return &schema.ValidationError{
					Tool:  t.Name(),
					Cause: fmt.Errorf("missing required field %q", field),
				}
			}
		}
	}
	if err := schema.DecodeStrict(args, model); err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) && verr.Tool == "" {
			verr.Tool = t.Name()
		}
		return err
	}
	return nil
}

// runSafely invokes Execute with panic containment: a panicking tool is
// reported as a failed result, never as a crash of the host loop.
func runSafely(ctx context.Context, t Tool, input any) (out schema.ToolOutput, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out = schema.Failuref("tool %q panicked: %v", t.Name(), rec)
			err = nil
		}
	}()
	return t.Execute(ctx, input)
}
