// Package tenantstore persists per-tenant image/activity configuration as a
// single flat JSON document keyed by company id. Every operation round-trips
// the whole document through the file. That is a deliberate simplicity
// trade-off for a low-write-volume administrative surface; writers within
// this process are serialized by a mutex, concurrent processes are not.
package tenantstore

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/andinpos/site-gateway/internal/domain"

	"go.uber.org/zap"
)

const fileName = "image-config.json"

// FileStore is a whole-document JSON file store for tenant configuration.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

// NewFileStore creates a store backed by <dir>/image-config.json.
func NewFileStore(dir string, logger *zap.Logger) *FileStore {
	return &FileStore{
		path:   filepath.Join(dir, fileName),
		logger: logger,
	}
}

// Ensure creates the containing directory and an empty document if absent.
// It is idempotent and never overwrites an existing document.
func (s *FileStore) Ensure() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	s.logger.Info("tenantstore: creating empty config document", zap.String("path", s.path))
	return s.write(domain.TenantConfigDocument{Companies: map[string]domain.TenantConfigEntry{}})
}

// Get returns the entry for tenantID, or nil if the tenant is unknown.
// An unknown tenant is not an error.
func (s *FileStore) Get(ctx context.Context, tenantID string) (*domain.TenantConfigEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	entry, ok := doc.Companies[tenantID]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

// Put replaces any prior entry for the tenant wholesale (no merge) and
// returns the stored entry. A zero LastUpdated is defaulted to now.
func (s *FileStore) Put(ctx context.Context, entry domain.TenantConfigEntry) (*domain.TenantConfigEntry, error) {
	if entry.LastUpdated == 0 {
		entry.LastUpdated = time.Now().UnixMilli()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	doc.Companies[entry.CompanyID] = entry
	if err := s.write(doc); err != nil {
		return nil, err
	}

	s.logger.Debug("tenantstore: entry saved",
		zap.String("company_id", entry.CompanyID),
		zap.Int("activities", len(entry.Activities)),
		zap.Int("images", len(entry.Images)),
	)
	return &entry, nil
}

func (s *FileStore) read() (domain.TenantConfigDocument, error) {
	doc := domain.TenantConfigDocument{Companies: map[string]domain.TenantConfigEntry{}}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return doc, nil
		}
		return doc, err
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, err
	}
	if doc.Companies == nil {
		doc.Companies = map[string]domain.TenantConfigEntry{}
	}
	return doc, nil
}

func (s *FileStore) write(doc domain.TenantConfigDocument) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
