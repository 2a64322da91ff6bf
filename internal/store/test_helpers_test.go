package store

import (
	"context"
	"path/filepath"
	"testing"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// putTestVertex stores a vertex or fails the test.
func putTestVertex(t *testing.T, s *Store, key ElementKey) {
	t.Helper()
	if err := s.PutVertex(context.Background(), key); err != nil {
		t.Fatalf("PutVertex(%s) failed: %v", key, err)
	}
}
