package shell_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	acp "github.com/coder/acp-go-sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanoshell/nanoshell/pkg/acpclient"
	"github.com/nanoshell/nanoshell/pkg/localagent"
	"github.com/nanoshell/nanoshell/pkg/shell"
)

// End-to-end: factory -> connection -> handshake -> prompt turn, against the
// in-process agent. No external binary, no network.
func TestShell_PromptRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	agent := localagent.New(nil)

	var out bytes.Buffer
	session := shell.NewSession(shell.Options{Root: t.TempDir(), Output: &out})

	client, err := acpclient.CreateClient(ctx, session, acpclient.Config{
		Auth:      acpclient.AuthNone(),
		Transport: agent.StartTransport(ctx),
	})
	require.NoError(t, err)

	sh := shell.New(session, client, "")
	require.NoError(t, sh.Start(ctx))
	assert.NotEmpty(t, session.ACPSessionID())

	stop, err := sh.Prompt(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, acp.StopReasonEndTurn, stop)
	assert.Equal(t, "echo: hello", session.Transcript())
	assert.Equal(t, "echo: hello", out.String())

	require.NoError(t, sh.Close(ctx))
}

func TestShell_PromptBeforeStart(t *testing.T) {
	ctx := context.Background()

	agent := localagent.New(nil)
	session := shell.NewSession(shell.Options{Root: t.TempDir()})

	client, err := acpclient.CreateClient(ctx, session, acpclient.Config{
		Auth:      acpclient.AuthNone(),
		Transport: agent.StartTransport(ctx),
	})
	require.NoError(t, err)
	defer func() { _ = client.Close(ctx) }()

	sh := shell.New(session, client, "")
	_, err = sh.Prompt(ctx, "hello")
	assert.Error(t, err)
}

func TestShell_ScriptedReplies(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	agent := localagent.New(func(prompt string) string {
		if prompt == "ping" {
			return "pong"
		}
		return "unknown"
	})

	session := shell.NewSession(shell.Options{Root: t.TempDir()})
	client, err := acpclient.CreateClient(ctx, session, acpclient.Config{
		Auth:      acpclient.AuthNone(),
		Transport: agent.StartTransport(ctx),
	})
	require.NoError(t, err)

	sh := shell.New(session, client, "")
	require.NoError(t, sh.Start(ctx))

	_, err = sh.Prompt(ctx, "ping")
	require.NoError(t, err)
	assert.Equal(t, "pong", session.Transcript())

	require.NoError(t, sh.Close(ctx))
}
