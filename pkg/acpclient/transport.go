package acpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Transport provides the I/O streams for ACP communication.
// The default transport spawns the agent subprocess described by a
// LaunchDescriptor; an in-memory transport can be injected instead to talk to
// an agent running in the same process.
type Transport interface {
	// Start initializes the transport and returns the streams for communication.
	// stdin is written to by the client (sent to the agent).
	// stdout is read by the client (received from the agent).
	Start(ctx context.Context) (stdin io.Writer, stdout io.Reader, err error)
	// Close shuts down the transport.
	Close(ctx context.Context) error
}

// Command names the agent binary and its arguments.
type Command struct {
	Name string   `json:"cmd"`
	Args []string `json:"args,omitempty"`
}

// processTransport spawns the agent subprocess and exposes its stdio.
type processTransport struct {
	desc   LaunchDescriptor
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
}

func newProcessTransport(desc LaunchDescriptor) *processTransport {
	return &processTransport{desc: desc}
}

func (t *processTransport) Start(ctx context.Context) (io.Writer, io.Reader, error) {
	cmd := exec.CommandContext(ctx, t.desc.Command.Name, t.desc.Command.Args...)
	// Composed variables go last so they win over inherited ones.
	cmd.Env = append(os.Environ(), EnvStrings(t.desc.Env)...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		_ = stdin.Close()
		return nil, nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		_ = stdin.Close()
		_ = stdout.Close()
		return nil, nil, fmt.Errorf("failed to start agent process %q: %w", t.desc.Command.Name, err)
	}

	t.cmd = cmd
	t.stdin = stdin
	t.stdout = stdout
	return stdin, stdout, nil
}

func (t *processTransport) Close(ctx context.Context) error {
	var errs []error
	if t.stdin != nil {
		if err := t.stdin.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if t.stdout != nil {
		if err := t.stdout.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if t.cmd != nil && t.cmd.Process != nil {
		if t.cmd.ProcessState == nil || !t.cmd.ProcessState.Exited() {
			_ = t.cmd.Process.Kill()
		}
		_ = t.cmd.Wait()
	}
	return errors.Join(errs...)
}

// StreamTransport is an in-memory Transport built from explicit streams.
// Used to connect to an agent hosted in the same process, and in tests.
type StreamTransport struct {
	Stdin  io.Writer
	Stdout io.Reader

	// OnClose, when set, is invoked by Close.
	OnClose func(ctx context.Context) error
}

func (t *StreamTransport) Start(ctx context.Context) (io.Writer, io.Reader, error) {
	if t.Stdin == nil || t.Stdout == nil {
		return nil, nil, fmt.Errorf("stream transport requires both stdin and stdout streams")
	}
	return t.Stdin, t.Stdout, nil
}

func (t *StreamTransport) Close(ctx context.Context) error {
	if t.OnClose != nil {
		return t.OnClose(ctx)
	}
	return nil
}
