package permission

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
)

// Request describes a pending authorization to the external decision
// callback. ID is unique per prompt so a host UI can correlate its
// response with the request it answered.
type Request struct {
	ID     string
	Tool   string
	Prompt string
}

// Decider is the external decision callback, typically backed by the host
// UI. A blocked Decide must honor ctx cancellation and return its error.
type Decider interface {
	Decide(ctx context.Context, req Request) (Choice, error)
}

// DeciderFunc adapts a function to the Decider interface.
type DeciderFunc func(ctx context.Context, req Request) (Choice, error)

func (f DeciderFunc) Decide(ctx context.Context, req Request) (Choice, error) {
	return f(ctx, req)
}

// StaticPolicy is a configuration-supplied overlay consulted after the
// durable store and before prompting. Allow wins over Deny for the same
// name, matching the session-policy precedence of the store itself.
type StaticPolicy struct {
	Allow []string
	Deny  []string
}

// Gateway mediates between an authorization request and tool execution:
// stored decision first, then the static overlay, then the decision
// callback. Whenever a decision cannot be conclusively determined the
// gateway fails closed.
type Gateway struct {
	store   *Store
	decider Decider
	policy  StaticPolicy
	log     *slog.Logger
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithDecider registers the external decision callback.
func WithDecider(d Decider) GatewayOption {
	return func(g *Gateway) { g.decider = d }
}

// WithStaticPolicy installs the configuration-supplied allow/deny overlay.
func WithStaticPolicy(p StaticPolicy) GatewayOption {
	return func(g *Gateway) { g.policy = p }
}

// WithGatewayLogger sets the gateway's logger.
func WithGatewayLogger(log *slog.Logger) GatewayOption {
	return func(g *Gateway) { g.log = log }
}

// NewGateway creates a gateway over the given store. Construct one per
// session and pass it to the agent loop; there is no global instance.
func NewGateway(store *Store, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		store: store,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Authorize decides whether the named tool may execute.
//
// A non-nil error never flips a Denied verdict to Allowed. The one case
// where both returns matter is Allowed (or Denied) together with a
// *PersistenceError: the decision holds for this session but could not be
// saved, and the caller should warn the user.
func (g *Gateway) Authorize(ctx context.Context, name string) (Verdict, error) {
	if name == "" {
		return Denied, fmt.Errorf("tool identity must not be empty")
	}

	switch g.store.Lookup(name) {
	case AlwaysAllow:
		return Allowed, nil
	case AlwaysDeny:
		return Denied, nil
	}

	if slices.Contains(g.policy.Allow, name) {
		return Allowed, nil
	}
	if slices.Contains(g.policy.Deny, name) {
		return Denied, nil
	}

	return g.ask(ctx, name)
}

// ask runs the AwaitingDecision state: prompt the external callback and
// persist always-decisions. Callback failure or cancellation resolves to
// Denied with nothing persisted.
func (g *Gateway) ask(ctx context.Context, name string) (Verdict, error) {
	if err := ctx.Err(); err != nil {
		return Denied, err
	}
	if g.decider == nil {
		return Denied, fmt.Errorf("no decision callback configured, denying tool %q", name)
	}

	req := Request{
		ID:     uuid.NewString(),
		Tool:   name,
		Prompt: fmt.Sprintf("Agent wants to use tool: %s\nAllow this tool?", name),
	}

	choice, err := g.decider.Decide(ctx, req)
	if err != nil {
		g.log.Warn("permission prompt failed, denying", "tool", name, "error", err)
		return Denied, fmt.Errorf("permission prompt for tool %q failed: %w", name, err)
	}

	switch choice {
	case AllowOnce:
		return Allowed, nil
	case DenyOnce:
		return Denied, nil
	case AllowAlways:
		return Allowed, g.store.Set(name, AlwaysAllow)
	case DenyAlways:
		return Denied, g.store.Set(name, AlwaysDeny)
	default:
		return Denied, fmt.Errorf("invalid permission choice %q for tool %q", choice, name)
	}
}
