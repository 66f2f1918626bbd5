// Package config loads the declarative agents file: per-agent command,
// authentication, extra environment variables, and MCP servers. The file is
// read when a shell starts, not watched; reconfiguring takes effect on the
// next client creation.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/lo"
	"sigs.k8s.io/yaml"

	"github.com/nanoshell/nanoshell/pkg/acpclient"
	"github.com/nanoshell/nanoshell/pkg/agents"
	"github.com/nanoshell/nanoshell/pkg/credential"
	"github.com/nanoshell/nanoshell/pkg/mcpclient"
)

// File is the root of the agents configuration file.
type File struct {
	Agents map[string]AgentSettings `json:"agents,omitempty"`
}

// AgentSettings configures one agent backend.
type AgentSettings struct {
	Command    string                   `json:"command,omitempty"`
	Args       []string                 `json:"args,omitempty"`
	Auth       AuthSettings             `json:"auth,omitempty"`
	Env        []EnvSetting             `json:"env,omitempty"`
	McpServers []mcpclient.ServerConfig `json:"mcpServers,omitempty"`
}

// EnvSetting is one extra environment variable. A list, not a map: order is
// preserved into the launch environment.
type EnvSetting struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// AuthSettings is the declarative authentication surface. At most one of the
// fields may be set; all unset means no authentication required.
type AuthSettings struct {
	// APIKey is a literal key.
	APIKey string `json:"apiKey,omitempty"`

	// APIKeyFrom defers the key to a provider reference, e.g.
	// env://NANOGPT_KEY, keyring://nanoshell/api-key, cmd://pass show k,
	// aws-sm://us-east-1/prod/nanogpt.
	APIKeyFrom string `json:"apiKeyFrom,omitempty"`

	// None declares explicitly that the agent needs no credential.
	None bool `json:"none,omitempty"`
}

// Spec turns the declarative settings into a validated AuthSpec.
func (a AuthSettings) Spec() (*acpclient.AuthSpec, error) {
	var provider acpclient.CredentialProvider
	if a.APIKeyFrom != "" {
		p, err := credential.FromReference(a.APIKeyFrom)
		if err != nil {
			return nil, err
		}
		provider = p
	}

	// A fully unset block means "no authentication required", the default of
	// the configuration surface. The constructor itself stays strict.
	if a.APIKey == "" && provider == nil && !a.None {
		return acpclient.AuthNone(), nil
	}

	return acpclient.NewAuthSpec(a.APIKey, provider, a.None)
}

// Settings converts to the runtime settings consumed by the agent catalog.
func (s AgentSettings) Settings() (*agents.Settings, error) {
	auth, err := s.Auth.Spec()
	if err != nil {
		return nil, err
	}

	return &agents.Settings{
		Command: acpclient.Command{Name: s.Command, Args: s.Args},
		Auth:    auth,
		Env: lo.Map(s.Env, func(e EnvSetting, _ int) acpclient.EnvVar {
			return acpclient.EnvVar{Name: e.Name, Value: e.Value}
		}),
	}, nil
}

// Load reads and validates the configuration file.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	f, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return f, nil
}

// Parse validates raw YAML against the config schema and unmarshals it.
func Parse(raw []byte) (*File, error) {
	asJSON, err := yaml.YAMLToJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}

	var instance any
	if err := json.Unmarshal(asJSON, &instance); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}

	if err := schema().Validate(instance); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	f := &File{}
	if err := json.Unmarshal(asJSON, f); err != nil {
		return nil, err
	}
	return f, nil
}
