package session

import (
	"context"
	"errors"

	"github.com/termle/admin-console/api"
	"github.com/termle/admin-console/dto"
	"github.com/termle/admin-console/logger"
	"github.com/termle/admin-console/store"
)

// Backend is the slice of the API client the controller needs.
type Backend interface {
	AuthURL(ctx context.Context, redirectURI string) (*dto.AuthURLResponse, error)
	ExchangeCode(ctx context.Context, code, state, redirectURI string) (*dto.ExchangeResponse, error)
	Me(ctx context.Context, credential string) (*dto.Identity, error)
}

// Controller owns credential lifecycle and the login state machine. It is
// safe for concurrent use; all state lives in the injected stores.
type Controller struct {
	backend     Backend
	creds       store.CredentialStore
	nonces      store.NonceStore
	redirectURI string
	log         *logger.Logger
}

// NewController wires the state machine. redirectURI is the fixed return
// address registered with the backend for the OAuth round trip.
func NewController(backend Backend, creds store.CredentialStore, nonces store.NonceStore, redirectURI string, log *logger.Logger) *Controller {
	return &Controller{
		backend:     backend,
		creds:       creds,
		nonces:      nonces,
		redirectURI: redirectURI,
		log:         log,
	}
}

// Resolve computes the session state for one request.
//
// No stored credential resolves straight to Anonymous with zero network
// calls. Otherwise the credential is validated against the identity
// endpoint: success is Authenticated; a forbidden-classified failure is
// Denied with the credential retained; anything else clears the credential
// and resolves Anonymous, treating unknown errors as an invalid or expired
// credential.
func (c *Controller) Resolve(ctx context.Context, sid string) Session {
	credential, ok, err := c.creds.Read(ctx, sid)
	if err != nil {
		c.log.Error("credential read failed", "error", err)
		return Session{State: StateAnonymous}
	}
	if !ok {
		return Session{State: StateAnonymous}
	}

	identity, err := c.backend.Me(ctx, credential)
	if err == nil {
		return Session{State: StateAuthenticated, Identity: identity, Credential: credential}
	}
	if api.IsForbidden(err) {
		return Session{State: StateDenied, Reason: "not an admin", Credential: credential}
	}
	c.log.Info("identity fetch failed, clearing credential", "error", err)
	if err := c.creds.Clear(ctx, sid); err != nil {
		c.log.Error("credential clear failed", "error", err)
	}
	return Session{State: StateAnonymous}
}

// BeginLogin asks the backend for a provider authorization URL, persists
// the returned state as the session's nonce, and hands back the URL for
// the browser redirect.
func (c *Controller) BeginLogin(ctx context.Context, sid string) (string, error) {
	res, err := c.backend.AuthURL(ctx, c.redirectURI)
	if err != nil {
		return "", err
	}
	if err := c.nonces.Put(ctx, sid, res.State); err != nil {
		return "", err
	}
	return res.AuthURL, nil
}

// HandleCallback runs one callback-handling pass for an authorization code.
//
// The nonce is consumed (read and deleted) before anything else, so it is
// gone after this pass whether the exchange succeeds, fails, or never
// happens. A callback with no matching nonce is a stale or replayed URL:
// it is ignored without any network call.
func (c *Controller) HandleCallback(ctx context.Context, sid, code string) CallbackResult {
	nonce, ok, err := c.nonces.Consume(ctx, sid)
	if err != nil {
		c.log.Error("nonce consume failed", "error", err)
		return CallbackResult{Outcome: CallbackDenied, Reason: "login state unavailable"}
	}
	if !ok {
		return CallbackResult{Outcome: CallbackIgnored}
	}

	res, err := c.backend.ExchangeCode(ctx, code, nonce, c.redirectURI)
	if err != nil {
		return CallbackResult{Outcome: CallbackDenied, Reason: exchangeReason(err)}
	}
	if res.Token == "" {
		return CallbackResult{Outcome: CallbackDenied, Reason: "no credential returned"}
	}
	if err := c.creds.Write(ctx, sid, res.Token); err != nil {
		c.log.Error("credential write failed", "error", err)
		return CallbackResult{Outcome: CallbackDenied, Reason: "could not persist credential"}
	}
	return CallbackResult{Outcome: CallbackSignedIn}
}

// Logout discards the credential. The caller redirects to the application
// root, which resolves the next request as Anonymous.
func (c *Controller) Logout(ctx context.Context, sid string) {
	if err := c.creds.Clear(ctx, sid); err != nil {
		c.log.Error("credential clear failed", "error", err)
	}
}

// exchangeReason prefers the backend-provided error text over the wrapped
// transport framing.
func exchangeReason(err error) string {
	var ae *api.Error
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return err.Error()
}
