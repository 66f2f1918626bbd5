// Package localagent provides a deterministic in-process ACP agent. It backs
// the shell's --local mode and lets client tests run without an external
// agent binary or network access.
package localagent

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	acp "github.com/coder/acp-go-sdk"
	"github.com/google/uuid"
)

// ReplyFunc produces the agent's answer to one prompt turn.
type ReplyFunc func(prompt string) string

// Agent is a scripted ACP agent served over explicit streams.
type Agent struct {
	reply    ReplyFunc
	conn     *acp.AgentSideConnection
	mu       sync.Mutex
	sessions map[acp.SessionId]bool
}

var _ acp.Agent = (*Agent)(nil)

// New creates an agent answering with reply. A nil reply echoes the prompt.
func New(reply ReplyFunc) *Agent {
	if reply == nil {
		reply = func(prompt string) string {
			return "echo: " + prompt
		}
	}
	return &Agent{
		reply:    reply,
		sessions: make(map[acp.SessionId]bool),
	}
}

// Serve runs the agent over the given streams until the connection is closed
// or ctx is cancelled.
func (a *Agent) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	conn := acp.NewAgentSideConnection(a, out, in)
	a.SetAgentConnection(conn)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-conn.Done():
		return nil
	}
}

// SetAgentConnection implements acp.AgentConnAware.
func (a *Agent) SetAgentConnection(conn *acp.AgentSideConnection) {
	a.conn = conn
}

// Initialize implements acp.Agent.
func (a *Agent) Initialize(ctx context.Context, params acp.InitializeRequest) (acp.InitializeResponse, error) {
	return acp.InitializeResponse{
		ProtocolVersion: acp.ProtocolVersionNumber,
		AgentCapabilities: acp.AgentCapabilities{
			LoadSession: false,
		},
	}, nil
}

// NewSession implements acp.Agent.
func (a *Agent) NewSession(ctx context.Context, params acp.NewSessionRequest) (acp.NewSessionResponse, error) {
	sessionID := acp.SessionId("sess_" + uuid.NewString())

	a.mu.Lock()
	a.sessions[sessionID] = true
	a.mu.Unlock()

	return acp.NewSessionResponse{SessionId: sessionID}, nil
}

// Authenticate implements acp.Agent.
func (a *Agent) Authenticate(ctx context.Context, params acp.AuthenticateRequest) (acp.AuthenticateResponse, error) {
	return acp.AuthenticateResponse{}, nil
}

// Cancel implements acp.Agent.
func (a *Agent) Cancel(ctx context.Context, params acp.CancelNotification) error {
	return nil
}

// SetSessionMode implements acp.Agent.
func (a *Agent) SetSessionMode(ctx context.Context, params acp.SetSessionModeRequest) (acp.SetSessionModeResponse, error) {
	return acp.SetSessionModeResponse{}, nil
}

// SetSessionConfigOption implements acp.Agent. The scripted agent has no
// configurable options.
func (a *Agent) SetSessionConfigOption(ctx context.Context, params acp.SetSessionConfigOptionRequest) (acp.SetSessionConfigOptionResponse, error) {
	return acp.SetSessionConfigOptionResponse{}, nil
}

// Prompt implements acp.Agent: collects the prompt text, streams back the
// scripted reply as a single message chunk, and ends the turn.
func (a *Agent) Prompt(ctx context.Context, params acp.PromptRequest) (acp.PromptResponse, error) {
	a.mu.Lock()
	known := a.sessions[params.SessionId]
	a.mu.Unlock()

	if !known {
		return acp.PromptResponse{}, fmt.Errorf("session %s not found", params.SessionId)
	}

	var prompt strings.Builder
	for _, p := range params.Prompt {
		if p.Text != nil {
			prompt.WriteString(p.Text.Text)
		}
	}

	err := a.conn.SessionUpdate(ctx, acp.SessionNotification{
		SessionId: params.SessionId,
		Update:    acp.UpdateAgentMessageText(a.reply(prompt.String())),
	})
	if err != nil {
		return acp.PromptResponse{}, err
	}

	return acp.PromptResponse{StopReason: acp.StopReasonEndTurn}, nil
}
