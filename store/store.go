// Package store persists the two pieces of client-side state the console
// keeps: the bearer credential and the single-use OAuth nonce, both keyed
// by browser session id.
package store

import "context"

// CredentialStore holds bearer credentials. No format or expiry validation
// happens here; validity is the backend's call.
type CredentialStore interface {
	// Read returns the stored credential, reporting absence without error.
	Read(ctx context.Context, sid string) (credential string, ok bool, err error)
	// Write persists the credential, overwriting any prior value.
	Write(ctx context.Context, sid, credential string) error
	// Clear removes any stored value. Clearing an absent key is not an error.
	Clear(ctx context.Context, sid string) error
}

// NonceStore holds OAuth correlation nonces across the provider redirect.
type NonceStore interface {
	// Put stores the nonce with a short TTL, overwriting any prior value.
	Put(ctx context.Context, sid, nonce string) error
	// Consume reads and deletes the nonce in one pass. A second Consume for
	// the same sid reports absence. Absence is not an error.
	Consume(ctx context.Context, sid string) (nonce string, ok bool, err error)
}
