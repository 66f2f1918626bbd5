package acpclient

import (
	"context"
	"errors"
	"io"
	"testing"

	acp "github.com/coder/acp-go-sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nopSession is a minimal acp.Client for factory tests.
type nopSession struct{}

func (s *nopSession) SessionUpdate(ctx context.Context, params acp.SessionNotification) error {
	return nil
}

func (s *nopSession) RequestPermission(ctx context.Context, params acp.RequestPermissionRequest) (acp.RequestPermissionResponse, error) {
	return acp.RequestPermissionResponse{Outcome: acp.NewRequestPermissionOutcomeCancelled()}, nil
}

func (s *nopSession) ReadTextFile(ctx context.Context, params acp.ReadTextFileRequest) (acp.ReadTextFileResponse, error) {
	return acp.ReadTextFileResponse{}, errors.New("not supported")
}

func (s *nopSession) WriteTextFile(ctx context.Context, params acp.WriteTextFileRequest) (acp.WriteTextFileResponse, error) {
	return acp.WriteTextFileResponse{}, errors.New("not supported")
}

func (s *nopSession) CreateTerminal(ctx context.Context, params acp.CreateTerminalRequest) (acp.CreateTerminalResponse, error) {
	return acp.CreateTerminalResponse{}, errors.New("not supported")
}

func (s *nopSession) TerminalOutput(ctx context.Context, params acp.TerminalOutputRequest) (acp.TerminalOutputResponse, error) {
	return acp.TerminalOutputResponse{}, errors.New("not supported")
}

func (s *nopSession) ReleaseTerminal(ctx context.Context, params acp.ReleaseTerminalRequest) (acp.ReleaseTerminalResponse, error) {
	return acp.ReleaseTerminalResponse{}, errors.New("not supported")
}

func (s *nopSession) WaitForTerminalExit(ctx context.Context, params acp.WaitForTerminalExitRequest) (acp.WaitForTerminalExitResponse, error) {
	return acp.WaitForTerminalExitResponse{}, errors.New("not supported")
}

func (s *nopSession) KillTerminalCommand(ctx context.Context, params acp.KillTerminalCommandRequest) (acp.KillTerminalCommandResponse, error) {
	return acp.KillTerminalCommandResponse{}, errors.New("not supported")
}

func TestNewLaunchDescriptor_MissingSession(t *testing.T) {
	providerCalled := false
	cfg := Config{
		Command: Command{Name: "nanocode", Args: []string{"acp"}},
		Auth: AuthAPIKeyFrom(ProviderFunc(func(ctx context.Context) (string, error) {
			providerCalled = true
			return "k1", nil
		})),
	}

	_, err := NewLaunchDescriptor(context.Background(), nil, cfg)
	require.Error(t, err)

	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
	assert.False(t, providerCalled, "the session check must run before any credential resolution")
}

func TestNewLaunchDescriptor_NoAuthEmptyEnv(t *testing.T) {
	desc, err := NewLaunchDescriptor(context.Background(), &nopSession{}, Config{
		Command: Command{Name: "nanocode", Args: []string{"acp"}},
		Auth:    AuthNone(),
	})
	require.NoError(t, err)

	assert.Equal(t, "nanocode", desc.Command.Name)
	assert.Equal(t, []string{"acp"}, desc.Command.Args)
	assert.Empty(t, desc.Env)
}

func TestNewLaunchDescriptor_APIKeyAndExtras(t *testing.T) {
	desc, err := NewLaunchDescriptor(context.Background(), &nopSession{}, Config{
		Command: Command{Name: "nanocode", Args: []string{"acp"}},
		Auth:    AuthAPIKey("k1"),
		Env:     []EnvVar{{Name: "X", Value: "1"}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"NANOGPT_API_KEY=k1", "X=1"}, EnvStrings(desc.Env))
}

func TestNewLaunchDescriptor_NilAuthDefaultsToNone(t *testing.T) {
	desc, err := NewLaunchDescriptor(context.Background(), &nopSession{}, Config{
		Command: Command{Name: "nanocode"},
	})
	require.NoError(t, err)
	assert.Empty(t, desc.Env)
}

type failingTransport struct{}

func (t *failingTransport) Start(ctx context.Context) (io.Writer, io.Reader, error) {
	return nil, nil, errors.New("boom")
}

func (t *failingTransport) Close(ctx context.Context) error { return nil }

func TestCreateClient_TransportFailurePropagates(t *testing.T) {
	_, err := CreateClient(context.Background(), &nopSession{}, Config{
		Command:   Command{Name: "nanocode"},
		Auth:      AuthNone(),
		Transport: &failingTransport{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "starting agent transport")
}

func TestCreateClient_StreamTransport(t *testing.T) {
	agentIn, clientOut := io.Pipe()
	clientIn, agentOut := io.Pipe()
	_ = agentIn
	_ = agentOut

	closed := false
	client, err := CreateClient(context.Background(), &nopSession{}, Config{
		Auth: AuthNone(),
		Transport: &StreamTransport{
			Stdin:  clientOut,
			Stdout: clientIn,
			OnClose: func(ctx context.Context) error {
				closed = true
				_ = clientOut.Close()
				return clientIn.Close()
			},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, client)

	require.NoError(t, client.Close(context.Background()))
	assert.True(t, closed)
}

type recordingTransport struct {
	started bool
}

func (t *recordingTransport) Start(ctx context.Context) (io.Writer, io.Reader, error) {
	t.started = true
	return nil, nil, errors.New("should not be reached")
}

func (t *recordingTransport) Close(ctx context.Context) error { return nil }

func TestCreateClient_AuthErrorBeforeSpawn(t *testing.T) {
	transport := &recordingTransport{}
	_, err := CreateClient(context.Background(), &nopSession{}, Config{
		Command: Command{Name: "nanocode"},
		Auth: AuthAPIKeyFrom(ProviderFunc(func(ctx context.Context) (string, error) {
			return "", errors.New("secret store down")
		})),
		Transport: transport,
	})
	require.Error(t, err)

	var authErr *AuthenticationError
	assert.True(t, errors.As(err, &authErr))
	assert.False(t, transport.started, "no transport may start once resolution has failed")
}
