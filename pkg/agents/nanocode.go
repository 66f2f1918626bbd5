package agents

import (
	"context"

	acp "github.com/coder/acp-go-sdk"

	"github.com/nanoshell/nanoshell/pkg/acpclient"
	"github.com/nanoshell/nanoshell/pkg/localagent"
)

// DefaultNanocodeCommand starts the nanocode binary in ACP mode.
var DefaultNanocodeCommand = acpclient.Command{Name: "nanocode", Args: []string{"acp"}}

// Settings is the user-facing configuration surface for an agent backend:
// how it authenticates and which extra environment variables it gets. The
// held values are read once per client creation, so reconfiguring between
// sessions takes effect on the next created client without restarting the
// shell.
type Settings struct {
	Command acpclient.Command
	Auth    *acpclient.AuthSpec
	Env     []acpclient.EnvVar
}

// Nanocode returns the config for the NanoGPT nanocode agent. settings may
// be nil, which means the default command and no authentication.
func Nanocode(settings *Settings) Config {
	return Config{
		ID:     "nanocode",
		Name:   "NanoGPT nanocode",
		Prompt: "nanocode> ",
		Welcome: func() string {
			return "\nWelcome to nanocode. Ask for a change, a review, or an explanation."
		},
		InstallInstructions: "Install the nanocode CLI and make sure it is on your PATH: npm install -g nanocode",
		NewClient: func(ctx context.Context, session acp.Client) (*acpclient.Client, error) {
			cfg := acpclient.Config{Command: DefaultNanocodeCommand}
			if settings != nil {
				if settings.Command.Name != "" {
					cfg.Command = settings.Command
				}
				cfg.Auth = settings.Auth
				cfg.Env = settings.Env
			}
			return acpclient.CreateClient(ctx, session, cfg)
		},
	}
}

// Custom returns a config for an arbitrary ACP agent declared in the
// configuration file. The command must be set in settings.
func Custom(id string, settings *Settings) Config {
	return Config{
		ID:     id,
		Name:   id,
		Prompt: id + "> ",
		Welcome: func() string {
			return "\nConnected to " + id + "."
		},
		InstallInstructions: "Declared in your agents config; make sure its command is on your PATH.",
		NewClient: func(ctx context.Context, session acp.Client) (*acpclient.Client, error) {
			if settings == nil || settings.Command.Name == "" {
				return nil, &acpclient.ConfigurationError{Reason: "agent " + id + " has no command configured"}
			}
			return acpclient.CreateClient(ctx, session, acpclient.Config{
				Command: settings.Command,
				Auth:    settings.Auth,
				Env:     settings.Env,
			})
		},
	}
}

// Local returns a config backed by the in-process echo agent. Useful for
// trying the shell without any agent binary installed.
func Local() Config {
	return Config{
		ID:     "local",
		Name:   "Local echo agent",
		Prompt: "local> ",
		Welcome: func() string {
			return "\nIn-process echo agent. Everything you type comes straight back."
		},
		InstallInstructions: "Built in, nothing to install.",
		NewClient: func(ctx context.Context, session acp.Client) (*acpclient.Client, error) {
			agent := localagent.New(nil)
			return acpclient.CreateClient(ctx, session, acpclient.Config{
				Auth:      acpclient.AuthNone(),
				Transport: agent.StartTransport(ctx),
			})
		},
	}
}
