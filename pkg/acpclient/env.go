package acpclient

import (
	"slices"

	"github.com/samber/lo"
)

// APIKeyEnvVar is the variable the nanocode binary reads to authenticate.
// This name is a protocol contract with the agent; changing it requires a
// coordinated change on the agent side.
const APIKeyEnvVar = "NANOGPT_API_KEY"

// EnvVar is a single KEY=VALUE environment entry. Order is preserved all the
// way to the spawned process, where later entries win on duplicate keys, so
// user-supplied variables can shadow resolver-derived ones.
type EnvVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (v EnvVar) String() string {
	return v.Name + "=" + v.Value
}

// EnvStrings renders variables in the KEY=VALUE form expected by exec.Cmd.
func EnvStrings(env []EnvVar) []string {
	return lo.Map(env, func(v EnvVar, _ int) string { return v.String() })
}

// ComposeEnv merges the resolved credential with user-supplied extra
// variables: the credential variable (if any) first, extras after, in their
// original order.
//
// An unresolved credential with no secret behind it means the caller skipped
// resolution entirely; failing here is the terminal guard against launching a
// silently unauthenticated agent.
func ComposeEnv(cred ResolvedCredential, extra []EnvVar) ([]EnvVar, error) {
	switch cred.kind {
	case credNotRequired:
		return slices.Clone(extra), nil
	case credSecret:
		env := make([]EnvVar, 0, len(extra)+1)
		env = append(env, EnvVar{Name: APIKeyEnvVar, Value: cred.secret})
		return append(env, extra...), nil
	default:
		return nil, &AuthenticationError{Reason: "missing authentication, resolve the auth spec before composing the environment"}
	}
}
