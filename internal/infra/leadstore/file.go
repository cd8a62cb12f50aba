// Package leadstore is the local fallback for demo-request persistence,
// used when Supabase is not configured. Leads are appended to a JSON file
// under the data directory.
package leadstore

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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const fileName = "demo-requests.json"

// FileStore persists leads in a single JSON array file.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

// NewFileStore creates a lead store backed by <dir>/demo-requests.json.
func NewFileStore(dir string, logger *zap.Logger) *FileStore {
	return &FileStore{
		path:   filepath.Join(dir, fileName),
		logger: logger,
	}
}

// SaveLead assigns id, created_at and status, appends the lead, and returns
// the stored record.
func (s *FileStore) SaveLead(ctx context.Context, lead *domain.DemoRequest) (*domain.StoredLead, error) {
	stored := domain.StoredLead{
		ID:        uuid.New().String(),
		Name:      lead.Name,
		Company:   lead.Company,
		Email:     lead.Email,
		Phone:     lead.Phone,
		Interest:  lead.Interest,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Status:    "new",
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	leads, err := s.read()
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "leadstore/file", Err: err}
	}
	leads = append(leads, stored)
	if err := s.write(leads); err != nil {
		return nil, &domain.ErrExternalService{Service: "leadstore/file", Err: err}
	}

	s.logger.Info("leadstore: lead saved",
		zap.String("lead_id", stored.ID),
		zap.String("company", stored.Company),
	)
	return &stored, nil
}

func (s *FileStore) read() ([]domain.StoredLead, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.StoredLead{}, nil
		}
		return nil, err
	}

	var leads []domain.StoredLead
	if err := json.Unmarshal(data, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

func (s *FileStore) write(leads []domain.StoredLead) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(leads, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
