package connect

// State represents the connection establishment state.
type State uint8

const (
	// StateIdle indicates no establishment flow is running.
	StateIdle State = iota

	// StateResolvingCredentials indicates credential resolution and
	// token provisioning are in progress.
	StateResolvingCredentials

	// StateAttempting indicates a connection attempt is in flight.
	StateAttempting

	// StateEstablished indicates the session was established. Terminal.
	StateEstablished

	// StateFailedFatal indicates the attempt failed with a fatal code.
	// Terminal.
	StateFailedFatal

	// StateFailedCredentials indicates a recoverable credential failure
	// that was not retried. Terminal.
	StateFailedCredentials

	// StateReauthenticating indicates the re-authentication flow is
	// deciding between redirect and credential prompt.
	StateReauthenticating

	// StateRedirected indicates control was handed off to an external
	// authentication service. Terminal: nothing resolves locally.
	StateRedirected
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateResolvingCredentials:
		return "RESOLVING_CREDENTIALS"
	case StateAttempting:
		return "ATTEMPTING"
	case StateEstablished:
		return "ESTABLISHED"
	case StateFailedFatal:
		return "FAILED_FATAL"
	case StateFailedCredentials:
		return "FAILED_CREDENTIALS"
	case StateReauthenticating:
		return "REAUTHENTICATING"
	case StateRedirected:
		return "REDIRECTED"
	default:
		return "UNKNOWN"
	}
}
