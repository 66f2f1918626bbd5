package acpclient

import "context"

type credKind int

const (
	credUnresolved credKind = iota
	credNotRequired
	credSecret
)

// ResolvedCredential is the transient outcome of resolving an AuthSpec:
// either a secret value or "not required". The zero value means resolution
// never ran, which ComposeEnv treats as a hard error rather than launching an
// unauthenticated agent.
type ResolvedCredential struct {
	kind   credKind
	secret string
}

// SecretCredential wraps a resolved secret value.
func SecretCredential(v string) ResolvedCredential {
	return ResolvedCredential{kind: credSecret, secret: v}
}

// NoCredential marks that the agent needs no secret.
func NoCredential() ResolvedCredential {
	return ResolvedCredential{kind: credNotRequired}
}

// IsSecret reports whether the credential carries a secret value.
func (c ResolvedCredential) IsSecret() bool {
	return c.kind == credSecret
}

// Value returns the secret, empty when none was resolved.
func (c ResolvedCredential) Value() string {
	return c.secret
}

// Resolve turns an AuthSpec into a concrete credential. Provider results are
// never cached: a deferred spec invokes its provider on every call.
//
// Provider failures are translated into a uniform AuthenticationError that
// discards the underlying cause. Backends like a keychain or a secrets
// manager fail with messages that can leak infrastructure detail, and none of
// it is actionable here: the user-facing fix is the auth configuration.
func Resolve(ctx context.Context, spec *AuthSpec) (ResolvedCredential, error) {
	if spec == nil {
		return ResolvedCredential{}, &ConfigurationError{Reason: "no authentication spec supplied"}
	}

	switch spec.kind {
	case authNone:
		return NoCredential(), nil
	case authLiteral:
		return SecretCredential(spec.literal), nil
	case authDeferred:
		key, err := spec.provider.Key(ctx)
		if err != nil {
			return ResolvedCredential{}, &AuthenticationError{Reason: "API key not found"}
		}
		return SecretCredential(key), nil
	default:
		// Unreachable through the exported constructors.
		return ResolvedCredential{}, &ConfigurationError{Reason: "invalid authentication spec"}
	}
}
