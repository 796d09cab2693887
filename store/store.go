// Package store keeps the high score across runs. The value is a decimal
// integer stored as text under a single key.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// HighScoreKey is the key (and, for FileStore, the file name) of the value.
const HighScoreKey = "highScore"

// ErrCorrupt is returned by Load when the stored text is not a
// non-negative decimal integer.
var ErrCorrupt = errors.New("stored high score is corrupt")

// Store is implemented by every backend.
type Store interface {
	Load(ctx context.Context) (int, bool, error)
	Save(ctx context.Context, score int) error
	Close() error
}

// Open returns the backend named by kind ("file" or "badger") rooted at path.
func Open(kind, path string) (Store, error) {
	switch kind {
	case "", "file":
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
		return &FileStore{Dir: path}, nil
	case "badger":
		return OpenBadger(path)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store %q", kind)
	}
}

func encode(score int) []byte { return []byte(strconv.Itoa(score)) }

func decode(b []byte) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrCorrupt, b)
	}
	return n, nil
}

// FileStore keeps the value in Dir/highScore.
type FileStore struct {
	Dir string
}

func (s *FileStore) path() string { return filepath.Join(s.Dir, HighScoreKey) }

func (s *FileStore) Load(_ context.Context) (int, bool, error) {
	b, err := os.ReadFile(s.path())
	if errors.Is(err, os.ErrNotExist) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read high score: %w", err)
	}
	n, err := decode(b)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

// Save writes to a temp file and renames it over the old value.
func (s *FileStore) Save(_ context.Context, score int) error {
	tmp, err := os.CreateTemp(s.Dir, HighScoreKey+".*")
	if err != nil {
		return fmt.Errorf("write high score: %w", err)
	}
	if _, err := tmp.Write(encode(score)); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write high score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write high score: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path()); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write high score: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu   sync.Mutex
	vals map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{vals: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context) (int, bool, error) {
	s.mu.Lock()
	b, ok := s.vals[HighScoreKey]
	s.mu.Unlock()
	if !ok {
		return 0, false, nil
	}
	n, err := decode(b)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

func (s *MemoryStore) Save(_ context.Context, score int) error {
	s.mu.Lock()
	s.vals[HighScoreKey] = encode(score)
	s.mu.Unlock()
	return nil
}

// SetRaw stores b verbatim, for exercising corrupt values.
func (s *MemoryStore) SetRaw(b []byte) {
	s.mu.Lock()
	s.vals[HighScoreKey] = append([]byte(nil), b...)
	s.mu.Unlock()
}

func (s *MemoryStore) Close() error { return nil }
