package shell

import (
	"context"
	"fmt"

	acp "github.com/coder/acp-go-sdk"
)

// Tool kinds that modify state. Unknown kinds count as destructive: the
// default posture is deny.
var destructiveToolKinds = map[string]bool{
	"edit":    true,
	"delete":  true,
	"move":    true,
	"execute": true,
}

var readOnlyToolKinds = map[string]bool{
	"read":   true,
	"search": true,
	"think":  true,
	"fetch":  true,
}

// RequestPermission implements acp.Client. Without AutoApprove only
// read-only tool kinds are allowed; with it, any recognized kind is.
func (s *Session) RequestPermission(ctx context.Context, params acp.RequestPermissionRequest) (acp.RequestPermissionResponse, error) {
	if err := s.validateSession(params.SessionId); err != nil {
		return acp.RequestPermissionResponse{}, err
	}

	allow := false
	if params.ToolCall.Kind != nil {
		kind := string(*params.ToolCall.Kind)
		switch {
		case readOnlyToolKinds[kind]:
			allow = true
		case destructiveToolKinds[kind]:
			allow = s.opts.AutoApprove
		}
	}

	return acp.RequestPermissionResponse{
		Outcome: selectOutcome(params.Options, allow),
	}, nil
}

// selectOutcome picks the permission option matching the decision, preferring
// the one-shot variant. When the request offers no matching option kind the
// turn is cancelled rather than guessed at.
func selectOutcome(options []acp.PermissionOption, allow bool) acp.RequestPermissionOutcome {
	var preferred []acp.PermissionOptionKind
	if allow {
		preferred = []acp.PermissionOptionKind{acp.PermissionOptionKindAllowOnce, acp.PermissionOptionKindAllowAlways}
	} else {
		preferred = []acp.PermissionOptionKind{acp.PermissionOptionKindRejectOnce, acp.PermissionOptionKindRejectAlways}
	}

	for _, kind := range preferred {
		for _, opt := range options {
			if opt.Kind == kind {
				out := acp.NewRequestPermissionOutcomeSelected()
				out.Selected.OptionId = opt.OptionId
				return out
			}
		}
	}
	return acp.NewRequestPermissionOutcomeCancelled()
}

// The shell renders agent output in its own buffer and does not host
// embedded terminals; the capability is not advertised at initialize time,
// so these are unreachable with a conforming agent.

func (s *Session) CreateTerminal(ctx context.Context, params acp.CreateTerminalRequest) (acp.CreateTerminalResponse, error) {
	return acp.CreateTerminalResponse{}, fmt.Errorf("terminals are not supported")
}

func (s *Session) TerminalOutput(ctx context.Context, params acp.TerminalOutputRequest) (acp.TerminalOutputResponse, error) {
	return acp.TerminalOutputResponse{}, fmt.Errorf("terminals are not supported")
}

func (s *Session) ReleaseTerminal(ctx context.Context, params acp.ReleaseTerminalRequest) (acp.ReleaseTerminalResponse, error) {
	return acp.ReleaseTerminalResponse{}, fmt.Errorf("terminals are not supported")
}

func (s *Session) WaitForTerminalExit(ctx context.Context, params acp.WaitForTerminalExitRequest) (acp.WaitForTerminalExitResponse, error) {
	return acp.WaitForTerminalExitResponse{}, fmt.Errorf("terminals are not supported")
}

func (s *Session) KillTerminalCommand(ctx context.Context, params acp.KillTerminalCommandRequest) (acp.KillTerminalCommandResponse, error) {
	return acp.KillTerminalCommandResponse{}, fmt.Errorf("terminals are not supported")
}
