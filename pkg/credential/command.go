package credential

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandProvider obtains the key by running an external command, e.g.
// `pass show nanogpt/api-key`, and trimming its stdout.
type CommandProvider struct {
	Name string
	Args []string
}

func (p *CommandProvider) Key(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, p.Name, p.Args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("credential command %q: %s: %w", p.Name, msg, err)
		}
		return "", fmt.Errorf("credential command %q: %w", p.Name, err)
	}

	key := strings.TrimSpace(stdout.String())
	if key == "" {
		return "", fmt.Errorf("credential command %q produced no output", p.Name)
	}
	return key, nil
}
