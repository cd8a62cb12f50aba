package session_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/andinpos/site-gateway/internal/infra/session"

	"go.uber.org/zap"
)

func TestFileStore_PutAndGet(t *testing.T) {
	s := session.NewFileStore(t.TempDir(), zap.NewNop())

	if err := s.Put(session.KeyUser, json.RawMessage(`{"token":"abc"}`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	v, ok, err := s.Get(session.KeyUser)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected key to exist")
	}
	if string(v) != `{"token":"abc"}` {
		t.Errorf("unexpected value: %s", v)
	}
}

func TestFileStore_GetMissingFile(t *testing.T) {
	s := session.NewFileStore(t.TempDir(), zap.NewNop())

	_, ok, err := s.Get(session.KeyCompany)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected miss on empty store")
	}
}

func TestFileStore_RejectsInvalidJSON(t *testing.T) {
	s := session.NewFileStore(t.TempDir(), zap.NewNop())

	if err := s.Put(session.KeyUser, json.RawMessage(`{not json`)); err == nil {
		t.Fatal("expected error for invalid JSON value")
	}
}

func TestFileStore_CorruptFileTreatedAsEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "session.json"), []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := session.NewFileStore(dir, zap.NewNop())

	_, ok, err := s.Get(session.KeyUser)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected corrupt store to read as empty")
	}
}

func TestFileStore_Clear(t *testing.T) {
	s := session.NewFileStore(t.TempDir(), zap.NewNop())

	if err := s.Put(session.KeyUser, json.RawMessage(`{"token":"abc"}`)); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(session.KeyCompany, json.RawMessage(`{"id":7}`)); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	_, ok, _ := s.Get(session.KeyUser)
	if ok {
		t.Fatal("expected user to be cleared")
	}
	_, ok, _ = s.Get(session.KeyCompany)
	if ok {
		t.Fatal("expected company to be cleared")
	}
}
