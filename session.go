// Package toolgate gates an agent's tool invocations behind durable
// per-tool permissions. A Session combines the permission gateway with the
// tool registry: the host conversation loop asks it for the tool catalog,
// then routes every tool call through Invoke.
package toolgate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hakkenlabs/toolgate/config"
	"github.com/hakkenlabs/toolgate/permission"
	"github.com/hakkenlabs/toolgate/schema"
	"github.com/hakkenlabs/toolgate/tool"
)

// Session ties one permission gateway to one tool registry for the
// lifetime of an agent session. Construct it once and pass it to the loop;
// there is no global instance.
type Session struct {
	gateway  *permission.Gateway
	registry *tool.Registry
	log      *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session's logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Session) { s.log = log }
}

// NewSession creates a session over the given gateway and registry.
func NewSession(gateway *permission.Gateway, registry *tool.Registry, opts ...Option) *Session {
	s := &Session{
		gateway:  gateway,
		registry: registry,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSessionFromConfig builds the store, gateway and registry from loaded
// configuration. decider may be nil, in which case every tool without a
// stored or static decision is denied (fail closed).
func NewSessionFromConfig(cfg *config.Config, decider permission.Decider, opts ...Option) (*Session, error) {
	store, err := permission.NewStore(cfg.StorePath)
	if err != nil {
		return nil, err
	}

	gwOpts := []permission.GatewayOption{
		permission.WithStaticPolicy(permission.StaticPolicy{
			Allow: cfg.Policy.Allow,
			Deny:  cfg.Policy.Deny,
		}),
	}
	if decider != nil {
		gwOpts = append(gwOpts, permission.WithDecider(decider))
	}
	gateway := permission.NewGateway(store, gwOpts...)

	var regOpts []tool.Option
	if cfg.RequireInputModel {
		regOpts = append(regOpts, tool.WithRequireInputModel())
	}
	registry := tool.NewRegistry(regOpts...)

	return NewSession(gateway, registry, opts...), nil
}

// Register adds a tool to the session's registry.
func (s *Session) Register(t tool.Tool) error {
	return s.registry.Register(t)
}

// Catalog returns the model-facing declarations of every registered tool.
func (s *Session) Catalog() []tool.Declaration {
	return s.registry.Declarations()
}

// Status reports a tool's progress side-channel.
func (s *Session) Status(name string) string {
	return s.registry.Status(name)
}

// Invoke authorizes the named tool and, if allowed, validates args and
// executes it.
//
// The returned output is always usable by the conversation loop: denials
// and tool faults come back as failed ToolOutputs, not errors. The error
// return carries gateway-level problems the host should report to the
// user (a failed prompt, a cancelled session) alongside the output. A
// decision that could not be durably saved is logged and execution
// continues; the preference still holds for this session.
func (s *Session) Invoke(ctx context.Context, name string, args map[string]any) (schema.ToolOutput, error) {
	verdict, err := s.gateway.Authorize(ctx, name)

	var perr *permission.PersistenceError
	if errors.As(err, &perr) {
		s.log.Warn("permission preference will not survive restart", "tool", name, "error", perr)
		err = nil
	}

	if verdict != permission.Allowed {
		if ctx.Err() != nil {
			return schema.ToolOutput{}, ctx.Err()
		}
		msg := fmt.Sprintf("permission denied for tool %q", name)
		if err != nil {
			msg = fmt.Sprintf("%s: %v", msg, err)
		}
		return schema.Failure(msg, msg), err
	}

	return s.registry.Run(ctx, name, args)
}
