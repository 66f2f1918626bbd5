package localagent

import (
	"context"
	"testing"
	"time"

	acp "github.com/coder/acp-go-sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgent_SessionLifecycle(t *testing.T) {
	a := New(nil)

	resp, err := a.Initialize(context.Background(), acp.InitializeRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, acp.ProtocolVersionNumber, resp.ProtocolVersion)

	sess, err := a.NewSession(context.Background(), acp.NewSessionRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.SessionId)

	sess2, err := a.NewSession(context.Background(), acp.NewSessionRequest{})
	require.NoError(t, err)
	assert.NotEqual(t, sess.SessionId, sess2.SessionId)

	_, err = a.SetSessionConfigOption(context.Background(), acp.SetSessionConfigOptionRequest{})
	assert.NoError(t, err, "config options are accepted and ignored")
}

func TestAgent_PromptUnknownSession(t *testing.T) {
	a := New(nil)

	_, err := a.Prompt(context.Background(), acp.PromptRequest{
		SessionId: acp.SessionId("nope"),
		Prompt:    []acp.ContentBlock{acp.TextBlock("hi")},
	})
	assert.Error(t, err)
}

func TestStartTransport_CloseStopsServing(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a := New(nil)
	transport := a.StartTransport(ctx)

	stdin, stdout, err := transport.Start(ctx)
	require.NoError(t, err)
	assert.NotNil(t, stdin)
	assert.NotNil(t, stdout)

	require.NoError(t, transport.Close(ctx))
}
