package credential

import (
	"context"
	"fmt"
	"os"
)

// EnvProvider reads the key from an environment variable on each invocation.
type EnvProvider struct {
	Var string
}

func (p *EnvProvider) Key(ctx context.Context) (string, error) {
	v, ok := os.LookupEnv(p.Var)
	if !ok || v == "" {
		return "", fmt.Errorf("environment variable %s is not set", p.Var)
	}
	return v, nil
}
