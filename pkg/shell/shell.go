package shell

import (
	"context"
	"fmt"

	acp "github.com/coder/acp-go-sdk"

	"github.com/nanoshell/nanoshell/pkg/acpclient"
)

// Shell drives one conversation with a connected agent: protocol handshake,
// session creation, and prompt turns.
type Shell struct {
	session *Session
	client  *acpclient.Client
	cwd     string
}

func New(session *Session, client *acpclient.Client, cwd string) *Shell {
	if cwd == "" {
		cwd = session.opts.Root
	}
	return &Shell{session: session, client: client, cwd: cwd}
}

// Start performs the ACP handshake and creates the agent session, binding
// its id to the owning Session.
func (s *Shell) Start(ctx context.Context) error {
	_, err := s.client.Initialize(ctx, acp.InitializeRequest{
		ProtocolVersion: acp.ProtocolVersionNumber,
		ClientCapabilities: acp.ClientCapabilities{
			Fs: acp.FileSystemCapability{
				ReadTextFile:  true,
				WriteTextFile: true,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize ACP connection: %w", err)
	}

	resp, err := s.client.NewSession(ctx, acp.NewSessionRequest{
		Cwd:        s.cwd,
		McpServers: []acp.McpServer{},
	})
	if err != nil {
		return fmt.Errorf("failed to create agent session: %w", err)
	}

	s.session.Bind(resp.SessionId)
	return nil
}

// Prompt sends one user turn and blocks until the agent finishes it. Agent
// output streams into the Session while this call is in flight.
func (s *Shell) Prompt(ctx context.Context, text string) (acp.StopReason, error) {
	id := s.session.ACPSessionID()
	if id == "" {
		return "", fmt.Errorf("shell is not started")
	}

	resp, err := s.client.Prompt(ctx, acp.PromptRequest{
		SessionId: id,
		Prompt:    []acp.ContentBlock{acp.TextBlock(text)},
	})
	if err != nil {
		return "", err
	}
	return resp.StopReason, nil
}

// Session returns the owning session.
func (s *Shell) Session() *Session {
	return s.session
}

// Close shuts the connection down, terminating the agent process if one was
// spawned.
func (s *Shell) Close(ctx context.Context) error {
	return s.client.Close(ctx)
}
