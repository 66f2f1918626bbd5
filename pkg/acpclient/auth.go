package acpclient

import "context"

// CredentialProvider produces a secret on demand, allowing retrieval to be
// deferred until a client is actually created (e.g. reading from a secret
// manager at connection time rather than at configuration time).
type CredentialProvider interface {
	Key(ctx context.Context) (string, error)
}

// ProviderFunc adapts a plain function to a CredentialProvider.
type ProviderFunc func(ctx context.Context) (string, error)

func (f ProviderFunc) Key(ctx context.Context) (string, error) {
	return f(ctx)
}

type authKind int

const (
	authNone authKind = iota + 1
	authLiteral
	authDeferred
)

// AuthSpec describes how an agent authenticates. It is a tagged union with
// exactly three states: no authentication, a literal API key, or a deferred
// key obtained from a CredentialProvider. The constructors below are the only
// way to build one, so no other state is representable.
type AuthSpec struct {
	kind     authKind
	literal  string
	provider CredentialProvider
}

// AuthNone returns a spec declaring that the agent needs no credential.
func AuthNone() *AuthSpec {
	return &AuthSpec{kind: authNone}
}

// AuthAPIKey returns a spec holding a literal API key.
func AuthAPIKey(key string) *AuthSpec {
	return &AuthSpec{kind: authLiteral, literal: key}
}

// AuthAPIKeyFrom returns a spec whose key is produced by p on every client
// creation. The provider is re-invoked each time, so rotated credentials take
// effect on the next agent session without reconfiguration.
func AuthAPIKeyFrom(p CredentialProvider) *AuthSpec {
	return &AuthSpec{kind: authDeferred, provider: p}
}

// NewAuthSpec is the declarative configuration surface: apiKey and provider
// fill the single "API key" slot (literal or deferred), none declares that no
// credential is needed. Exactly one of the two slots must be populated.
func NewAuthSpec(apiKey string, provider CredentialProvider, none bool) (*AuthSpec, error) {
	keySupplied := apiKey != "" || provider != nil

	switch {
	case keySupplied && none:
		return nil, &ConfigurationError{Reason: "both an API key and no-auth were supplied, pick one"}
	case apiKey != "" && provider != nil:
		return nil, &ConfigurationError{Reason: "both a literal API key and a key provider were supplied, pick one"}
	case !keySupplied && !none:
		return nil, &ConfigurationError{Reason: "neither an API key nor no-auth was supplied"}
	case provider != nil:
		return AuthAPIKeyFrom(provider), nil
	case apiKey != "":
		return AuthAPIKey(apiKey), nil
	default:
		return AuthNone(), nil
	}
}

// RequiresAuth reports whether resolving this spec must yield a secret.
func (s *AuthSpec) RequiresAuth() bool {
	return s != nil && s.kind != authNone
}
