// Package agents holds the declarative catalog of agent backends the shell
// can host: what each one is called, how to greet the user, how to install
// it, and how to build a live client for it.
package agents

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	acp "github.com/coder/acp-go-sdk"
	"github.com/samber/lo"

	"github.com/nanoshell/nanoshell/pkg/acpclient"
)

// ClientMaker builds a connected client owned by the given session.
type ClientMaker func(ctx context.Context, session acp.Client) (*acpclient.Client, error)

// Config describes one agent backend. The core treats everything here as
// opaque data except NewClient.
type Config struct {
	// ID identifies the backend in the registry and on the command line.
	ID string

	// Name is the human-readable display name.
	Name string

	// Prompt is printed before each user turn in the interactive shell.
	Prompt string

	// Welcome produces the base welcome text shown when a shell starts.
	Welcome func() string

	// InstallInstructions tells the user how to obtain the agent binary.
	InstallInstructions string

	// NewClient creates a client for this backend.
	NewClient ClientMaker
}

// Registry maps backend ids to their configurations.
type Registry struct {
	mu   sync.RWMutex
	byID map[string]Config
}

func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]Config)}
}

func (r *Registry) Register(cfg Config) error {
	if cfg.ID == "" {
		return fmt.Errorf("agent config needs an id")
	}
	if cfg.NewClient == nil {
		return fmt.Errorf("agent config %q needs a client maker", cfg.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[cfg.ID]; exists {
		return fmt.Errorf("agent %q is already registered", cfg.ID)
	}
	r.byID[cfg.ID] = cfg
	return nil
}

func (r *Registry) Get(id string) (Config, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.byID[id]
	return cfg, ok
}

// List returns all registered configs ordered by id.
func (r *Registry) List() []Config {
	r.mu.RLock()
	defer r.mu.RUnlock()

	configs := lo.Values(r.byID)
	slices.SortFunc(configs, func(a, b Config) int {
		return strings.Compare(a.ID, b.ID)
	})
	return configs
}
