package store

import (
	"context"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v2"
)

// BadgerStore keeps the value in an embedded badger database.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens (or creates) a database in dir. An empty dir opens an
// in-memory database.
func OpenBadger(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger %q: %w", dir, err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Load(_ context.Context) (int, bool, error) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(HighScoreKey))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read high score: %w", err)
	}
	n, err := decode(raw)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

func (s *BadgerStore) Save(_ context.Context, score int) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(HighScoreKey), encode(score))
	})
	if err != nil {
		return fmt.Errorf("write high score: %w", err)
	}
	return nil
}

func (s *BadgerStore) setRaw(b []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(HighScoreKey), b)
	})
}

func (s *BadgerStore) Close() error { return s.db.Close() }
