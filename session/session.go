// Package session implements the login state machine: a browser session is
// Anonymous, Authenticated, or Denied, and moves between those states only
// through login, logout, or a fresh page load re-running resolution.
package session

import "github.com/termle/admin-console/dto"

// State is the resolved authentication state of a browser session.
type State int

const (
	// StateAnonymous means no usable credential is held.
	StateAnonymous State = iota
	// StateAuthenticated means the credential was validated against the
	// identity endpoint this request.
	StateAuthenticated
	// StateDenied means the backend recognized the credential but refused
	// admin access. The credential is retained so the denial stays visible
	// instead of silently logging the user out.
	StateDenied
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateDenied:
		return "denied"
	default:
		return "anonymous"
	}
}

// Session is the outcome of resolving one request. Identity is set only
// when Authenticated; Reason only when Denied. Credential carries the
// bearer token for follow-up API calls made on behalf of this request.
type Session struct {
	State      State
	Identity   *dto.Identity
	Reason     string
	Credential string
}

// CallbackOutcome reports how an OAuth callback was handled.
type CallbackOutcome int

const (
	// CallbackIgnored means no local nonce existed: a stale or replayed
	// URL. No exchange is attempted and normal resolution proceeds.
	CallbackIgnored CallbackOutcome = iota
	// CallbackSignedIn means a credential was obtained and persisted.
	CallbackSignedIn
	// CallbackDenied means the exchange failed or returned no credential.
	CallbackDenied
)

// CallbackResult is the outcome of one callback-handling pass plus the
// denial reason when Outcome is CallbackDenied.
type CallbackResult struct {
	Outcome CallbackOutcome
	Reason  string
}
