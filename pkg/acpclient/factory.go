// Package acpclient builds clients for external coding agents speaking the
// Agent Client Protocol over a spawned process's standard streams.
//
// The pipeline is deliberately strict and ordered: an AuthSpec is resolved
// into a credential, the credential is composed with extra environment
// variables, and only then is the agent process started. Each step either
// completes or fails the whole creation; there is no partial-success state.
package acpclient

import (
	"context"
	"fmt"

	acp "github.com/coder/acp-go-sdk"
)

// Config is the declarative launch configuration for one agent backend.
type Config struct {
	// Command and Args are used to spawn the agent subprocess when Transport is nil.
	Command Command `json:"command"`

	// Auth describes how the agent authenticates. Defaults to no authentication.
	Auth *AuthSpec `json:"-"`

	// Env holds extra environment variables, composed after any
	// credential-derived variable.
	Env []EnvVar `json:"env,omitempty"`

	// Transport, when set, provides the I/O streams directly instead of
	// spawning a subprocess. This allows in-memory communication with an agent.
	Transport Transport `json:"-"`
}

// LaunchDescriptor is the fully validated bundle needed to start an agent:
// the command, the composed environment, and the session that owns the
// resulting process. Built fresh per client creation and not retained.
type LaunchDescriptor struct {
	Command Command
	Env     []EnvVar
	Session acp.Client
}

// Client is a live protocol connection to a running agent. Closing it shuts
// down the transport, killing the spawned process if one was started.
type Client struct {
	*acp.ClientSideConnection

	transport Transport
}

func (c *Client) Close(ctx context.Context) error {
	return c.transport.Close(ctx)
}

// NewLaunchDescriptor validates the configuration and composes the final
// launch parameters without starting anything. session must be non-nil: a
// client cannot exist without an owning session to stream output into, and
// this is checked before any credential work happens.
func NewLaunchDescriptor(ctx context.Context, session acp.Client, cfg Config) (LaunchDescriptor, error) {
	if session == nil {
		return LaunchDescriptor{}, &ConfigurationError{Reason: "missing session, a client needs an owning session context"}
	}

	auth := cfg.Auth
	if auth == nil {
		auth = AuthNone()
	}

	cred, err := Resolve(ctx, auth)
	if err != nil {
		return LaunchDescriptor{}, err
	}

	env, err := ComposeEnv(cred, cfg.Env)
	if err != nil {
		return LaunchDescriptor{}, err
	}

	return LaunchDescriptor{Command: cfg.Command, Env: env, Session: session}, nil
}

// CreateClient resolves authentication, composes the environment, starts the
// transport and hands the streams to the protocol connection. Any failure
// from the transport or connection propagates unchanged; nothing is retried.
func CreateClient(ctx context.Context, session acp.Client, cfg Config) (*Client, error) {
	desc, err := NewLaunchDescriptor(ctx, session, cfg)
	if err != nil {
		return nil, err
	}

	transport := cfg.Transport
	if transport == nil {
		transport = newProcessTransport(desc)
	}

	stdin, stdout, err := transport.Start(ctx)
	if err != nil {
		return nil, fmt.Errorf("starting agent transport: %w", err)
	}

	conn := acp.NewClientSideConnection(desc.Session, stdin, stdout)

	return &Client{ClientSideConnection: conn, transport: transport}, nil
}
