package acpclient

// ConfigurationError reports structurally invalid client configuration:
// contradictory or missing authentication options, or a missing session
// context. It always surfaces before any agent process is spawned.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "agent client configuration: " + e.Reason
}

// AuthenticationError reports that a required credential could not be
// produced. Provider failures are deliberately reduced to a fixed message so
// that secret-store internals never reach the user; the fix is always in the
// authentication configuration, not in the underlying backend error.
type AuthenticationError struct {
	Reason string
}

func (e *AuthenticationError) Error() string {
	return "agent authentication: " + e.Reason
}
