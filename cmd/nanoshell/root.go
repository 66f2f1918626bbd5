package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nanoshell/nanoshell/pkg/agents"
	"github.com/nanoshell/nanoshell/pkg/config"
)

var configPath string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "nanoshell",
		Short:         "Talk to coding agents over the Agent Client Protocol",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to the agents config file (default $HOME/.nanoshell/agents.yaml)")

	cmd.AddCommand(newRunCmd(), newAgentsCmd(), newMcpCmd())
	return cmd
}

// loadFile reads the agents config. The default location is optional: a
// missing default file means an empty config, an explicit --config that does
// not exist is an error.
func loadFile() (*config.File, error) {
	if configPath != "" {
		return config.Load(configPath)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return &config.File{}, nil
	}

	path := filepath.Join(home, ".nanoshell", "agents.yaml")
	if _, err := os.Stat(path); err != nil {
		return &config.File{}, nil
	}
	return config.Load(path)
}

// buildRegistry assembles the agent catalog: nanocode and the local echo
// agent always, plus any other agents declared in the config file.
func buildRegistry(f *config.File) (*agents.Registry, error) {
	reg := agents.NewRegistry()

	var nanocodeSettings *agents.Settings
	if s, ok := f.Agents["nanocode"]; ok {
		settings, err := s.Settings()
		if err != nil {
			return nil, fmt.Errorf("agent nanocode: %w", err)
		}
		nanocodeSettings = settings
	}

	if err := reg.Register(agents.Nanocode(nanocodeSettings)); err != nil {
		return nil, err
	}
	if err := reg.Register(agents.Local()); err != nil {
		return nil, err
	}

	for id, s := range f.Agents {
		if id == "nanocode" {
			continue
		}
		settings, err := s.Settings()
		if err != nil {
			return nil, fmt.Errorf("agent %s: %w", id, err)
		}
		if err := reg.Register(agents.Custom(id, settings)); err != nil {
			return nil, err
		}
	}

	return reg, nil
}
