package store

import (
	"context"
	"time"

	valkey "github.com/valkey-io/valkey-go"
)

// ValkeyStore keeps credentials and nonces in Valkey (Redis-compatible),
// for deployments running more than one console instance.
type ValkeyStore struct {
	client   valkey.Client
	prefix   string
	credTTL  time.Duration
	nonceTTL time.Duration
}

// NewValkeyStore connects to addr ("127.0.0.1:6379"). prefix namespaces the
// keys and defaults to "admin:".
func NewValkeyStore(addr, prefix string, credTTL, nonceTTL time.Duration) (*ValkeyStore, error) {
	cli, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{addr}})
	if err != nil {
		return nil, err
	}
	if prefix == "" {
		prefix = "admin:"
	}
	return &ValkeyStore{client: cli, prefix: prefix, credTTL: credTTL, nonceTTL: nonceTTL}, nil
}

// Close shuts down the connection pool.
func (s *ValkeyStore) Close() { s.client.Close() }

func (s *ValkeyStore) key(k string) string { return s.prefix + k }

func (s *ValkeyStore) get(ctx context.Context, key string) (string, bool, error) {
	res := s.client.Do(ctx, s.client.B().Get().Key(s.key(key)).Build())
	if err := res.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		return "", false, err
	}
	val, err := res.ToString()
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *ValkeyStore) set(ctx context.Context, key, val string, ttl time.Duration) error {
	if ttl > 0 {
		return s.client.Do(ctx, s.client.B().Set().Key(s.key(key)).Value(val).Ex(ttl).Build()).Error()
	}
	return s.client.Do(ctx, s.client.B().Set().Key(s.key(key)).Value(val).Build()).Error()
}

func (s *ValkeyStore) Read(ctx context.Context, sid string) (string, bool, error) {
	return s.get(ctx, credPrefix+sid)
}

func (s *ValkeyStore) Write(ctx context.Context, sid, credential string) error {
	return s.set(ctx, credPrefix+sid, credential, s.credTTL)
}

// Clear deletes the credential; missing is not an error.
func (s *ValkeyStore) Clear(ctx context.Context, sid string) error {
	return s.client.Do(ctx, s.client.B().Del().Key(s.key(credPrefix+sid)).Build()).Error()
}

func (s *ValkeyStore) Put(ctx context.Context, sid, nonce string) error {
	return s.set(ctx, noncePrefix+sid, nonce, s.nonceTTL)
}

// Consume uses GETDEL so read-and-delete is one round trip and single-use
// holds across instances.
func (s *ValkeyStore) Consume(ctx context.Context, sid string) (string, bool, error) {
	res := s.client.Do(ctx, s.client.B().Getdel().Key(s.key(noncePrefix+sid)).Build())
	if err := res.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		return "", false, err
	}
	val, err := res.ToString()
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}
