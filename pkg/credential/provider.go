// Package credential implements deferred credential providers for agent
// authentication. Providers are referenced from configuration as scheme URIs
// (env://VAR, keyring://service/account, cmd://..., aws-sm://[region/]name
// with aws-sm://region=code/name when the secret name resembles a region)
// and invoked at client-creation time, never at configuration time.
package credential

import (
	"fmt"
	"strings"

	"github.com/nanoshell/nanoshell/pkg/acpclient"
)

// InvalidReferenceError reports a provider reference that cannot be parsed.
type InvalidReferenceError struct {
	Reference string
	Reason    string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid credential reference %q: %s", e.Reference, e.Reason)
}

// FromReference builds a provider from a scheme-qualified reference.
func FromReference(ref string) (acpclient.CredentialProvider, error) {
	scheme, rest, ok := strings.Cut(ref, "://")
	if !ok || scheme == "" {
		return nil, &InvalidReferenceError{Reference: ref, Reason: "missing scheme"}
	}

	switch scheme {
	case "env":
		if rest == "" {
			return nil, &InvalidReferenceError{Reference: ref, Reason: "missing variable name"}
		}
		return &EnvProvider{Var: rest}, nil

	case "keyring":
		service, account, ok := strings.Cut(rest, "/")
		if !ok || service == "" || account == "" {
			return nil, &InvalidReferenceError{Reference: ref, Reason: "expected keyring://service/account"}
		}
		return &KeyringProvider{Service: service, Account: account}, nil

	case "cmd":
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			return nil, &InvalidReferenceError{Reference: ref, Reason: "missing command"}
		}
		return &CommandProvider{Name: fields[0], Args: fields[1:]}, nil

	case "aws-sm":
		if rest == "" {
			return nil, &InvalidReferenceError{Reference: ref, Reason: "missing secret name"}
		}
		// aws-sm://secret-name, aws-sm://region/secret-name, or the explicit
		// aws-sm://region=code/secret-name form for secret names whose first
		// path segment would otherwise be mistaken for a region.
		if after, found := strings.CutPrefix(rest, "region="); found {
			region, name, ok := strings.Cut(after, "/")
			if !ok || region == "" || name == "" {
				return nil, &InvalidReferenceError{Reference: ref, Reason: "expected aws-sm://region=code/secret-name"}
			}
			return &SecretsManagerProvider{Region: region, SecretID: name}, nil
		}
		if region, name, ok := strings.Cut(rest, "/"); ok && looksLikeRegion(region) {
			return &SecretsManagerProvider{Region: region, SecretID: name}, nil
		}
		return &SecretsManagerProvider{SecretID: rest}, nil

	default:
		return nil, &InvalidReferenceError{Reference: ref, Reason: fmt.Sprintf("unsupported scheme %q", scheme)}
	}
}

// looksLikeRegion distinguishes aws-sm://us-east-1/name from a secret whose
// name itself contains a slash. Region codes always have at least two dashes;
// a secret named like one (my-prod-key/sub) needs the region= form instead.
func looksLikeRegion(s string) bool {
	return strings.Count(s, "-") >= 2 && !strings.ContainsAny(s, "/_")
}
