package localagent

import (
	"context"
	"io"

	"github.com/nanoshell/nanoshell/pkg/acpclient"
)

// StartTransport connects the agent to an in-memory stream pair and begins
// serving it in the background. The returned transport plugs straight into
// acpclient.Config.Transport; closing it stops the agent.
func (a *Agent) StartTransport(ctx context.Context) *acpclient.StreamTransport {
	agentIn, clientOut := io.Pipe()
	clientIn, agentOut := io.Pipe()

	serveCtx, cancel := context.WithCancel(ctx)
	go func() {
		_ = a.Serve(serveCtx, agentIn, agentOut)
	}()

	return &acpclient.StreamTransport{
		Stdin:  clientOut,
		Stdout: clientIn,
		OnClose: func(ctx context.Context) error {
			cancel()
			_ = clientOut.Close()
			_ = clientIn.Close()
			_ = agentIn.Close()
			_ = agentOut.Close()
			return nil
		},
	}
}
