package store

import (
	"context"
	"time"

	"github.com/tidwall/buntdb"
)

const (
	credPrefix  = "cred:"
	noncePrefix = "nonce:"
)

// BuntStore is the embedded default store, backed by a single buntdb file.
// Pass ":memory:" for tests and ephemeral deployments.
type BuntStore struct {
	db       *buntdb.DB
	credTTL  time.Duration
	nonceTTL time.Duration
}

// NewBuntStore opens (or creates) the database at path. A non-positive TTL
// disables expiry for that class of key.
func NewBuntStore(path string, credTTL, nonceTTL time.Duration) (*BuntStore, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, err
	}
	return &BuntStore{db: db, credTTL: credTTL, nonceTTL: nonceTTL}, nil
}

// Close releases the underlying database.
func (s *BuntStore) Close() error { return s.db.Close() }

func (s *BuntStore) Read(_ context.Context, sid string) (string, bool, error) {
	var val string
	err := s.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(credPrefix + sid)
		if err != nil {
			return err
		}
		val = v
		return nil
	})
	if err == buntdb.ErrNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *BuntStore) Write(_ context.Context, sid, credential string) error {
	return s.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(credPrefix+sid, credential, setOptions(s.credTTL))
		return err
	})
}

func (s *BuntStore) Clear(_ context.Context, sid string) error {
	return s.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(credPrefix + sid)
		if err == buntdb.ErrNotFound {
			return nil
		}
		return err
	})
}

func (s *BuntStore) Put(_ context.Context, sid, nonce string) error {
	return s.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(noncePrefix+sid, nonce, setOptions(s.nonceTTL))
		return err
	})
}

// Consume deletes the nonce in the same transaction that reads it, so a
// concurrent second consumer cannot observe the value.
func (s *BuntStore) Consume(_ context.Context, sid string) (string, bool, error) {
	var val string
	err := s.db.Update(func(tx *buntdb.Tx) error {
		v, err := tx.Get(noncePrefix + sid)
		if err != nil {
			return err
		}
		val = v
		_, err = tx.Delete(noncePrefix + sid)
		return err
	})
	if err == buntdb.ErrNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func setOptions(ttl time.Duration) *buntdb.SetOptions {
	if ttl <= 0 {
		return nil
	}
	return &buntdb.SetOptions{Expires: true, TTL: ttl}
}
