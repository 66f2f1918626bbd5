// Package mcpclient connects to the MCP servers an agent is configured with,
// so the shell can report on them before a session starts.
package mcpclient

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ServerConfig describes one MCP server an agent may use: HTTP when URL is
// set, a stdio subprocess otherwise.
type ServerConfig struct {
	Name    string            `json:"name"`
	URL     string            `json:"url,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	Command string            `json:"command,omitempty"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

func (c *ServerConfig) IsHttp() bool {
	return c.URL != ""
}

// transport builds the protocol transport for this server: streamable HTTP
// when a URL is configured, a spawned subprocess otherwise.
func (c *ServerConfig) transport(ctx context.Context) mcp.Transport {
	if c.IsHttp() {
		return &mcp.StreamableClientTransport{
			Endpoint: c.URL,
			HTTPClient: &http.Client{
				Transport: &headerRoundTripper{headers: c.Headers, base: http.DefaultTransport},
			},
		}
	}

	cmd := exec.CommandContext(ctx, c.Command, c.Args...)
	cmd.Env = buildEnv(c.Env)
	return &mcp.CommandTransport{Command: cmd}
}

// identity is what the preflight announces to servers at initialize time.
var identity = &mcp.Implementation{
	Name:    "nanoshell-preflight",
	Version: "0.0.0",
}

type Client struct {
	*mcp.ClientSession
	cfg *ServerConfig
}

// Connect establishes a session with the configured server.
func Connect(ctx context.Context, cfg *ServerConfig) (*Client, error) {
	cs, err := mcp.NewClient(identity, nil).Connect(ctx, cfg.transport(ctx), nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to %q: %w", cfg.Name, err)
	}

	return &Client{ClientSession: cs, cfg: cfg}, nil
}

// ListTools returns the names of every tool the server advertises.
func (c *Client) ListTools(ctx context.Context) ([]string, error) {
	names := []string{}
	for t, err := range c.Tools(ctx, &mcp.ListToolsParams{}) {
		if err != nil {
			return names, fmt.Errorf("listing tools on %q: %w", c.cfg.Name, err)
		}
		names = append(names, t.Name)
	}
	return names, nil
}

type headerRoundTripper struct {
	headers map[string]string
	base    http.RoundTripper
}

func (rt *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	for k, v := range rt.headers {
		req.Header.Set(k, v)
	}
	return rt.base.RoundTrip(req)
}

// buildEnv layers the configured variables over the inherited environment.
// Appended entries come last, so they win over inherited ones.
func buildEnv(extra map[string]string) []string {
	env := os.Environ()
	for name, value := range extra {
		env = append(env, name+"="+value)
	}
	return env
}
