// Package session persists the client session state the resolver reads:
// the "user" and "company" records the site frontend stored after login.
// It replaces ad hoc string-keyed browser storage with a typed key-value
// store behind an explicit interface, so key ownership is enforceable.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Well-known session keys. Nothing else is ever stored in this namespace.
const (
	KeyUser    = "user"
	KeyCompany = "company"
)

// FileStore keeps the session namespace in a single JSON file, created
// lazily on first write. Reads of a missing file behave as an empty store.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

// NewFileStore creates a session store backed by <dir>/session.json.
func NewFileStore(dir string, logger *zap.Logger) *FileStore {
	return &FileStore{
		path:   filepath.Join(dir, "session.json"),
		logger: logger,
	}
}

// Get returns the raw JSON value for key, with ok=false if absent.
func (s *FileStore) Get(key string) (json.RawMessage, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, false, err
	}
	v, ok := doc[key]
	return v, ok, nil
}

// Put stores value under key, rewriting the whole namespace file.
func (s *FileStore) Put(key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return fmt.Errorf("session: value for %q is not valid JSON", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	doc[key] = value
	return s.write(doc)
}

// Delete removes key if present.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := doc[key]; !ok {
		return nil
	}
	delete(doc, key)
	return s.write(doc)
}

// Clear empties the whole session namespace.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(map[string]json.RawMessage{})
}

func (s *FileStore) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, err
	}

	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &doc); err != nil {
		// A corrupt file degrades to an empty session rather than wedging
		// the resolver; the damage is logged for the operator.
		s.logger.Warn("session: corrupt store file, treating as empty",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return map[string]json.RawMessage{}, nil
	}
	return doc, nil
}

func (s *FileStore) write(doc map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
