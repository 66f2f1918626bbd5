package credential

import (
	"context"
	"fmt"

	"github.com/zalando/go-keyring"
)

// KeyringProvider reads the key from the system keychain: Keychain on macOS,
// libsecret/kwallet on Linux, Credential Manager on Windows.
type KeyringProvider struct {
	Service string
	Account string
}

func (p *KeyringProvider) Key(ctx context.Context) (string, error) {
	secret, err := keyring.Get(p.Service, p.Account)
	if err != nil {
		return "", fmt.Errorf("reading %s/%s from system keyring: %w", p.Service, p.Account, err)
	}
	return secret, nil
}
