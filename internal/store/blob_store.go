package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/ppiankov/greenlie/internal/model"
)

// BlobStore keeps each collection as a flat JSON list in its own file
type BlobStore struct {
	dir    string
	logger *slog.Logger
	mu     sync.Mutex
}

// NewBlobStore creates a blob store rooted at dir
func NewBlobStore(dir string, logger *slog.Logger) (*BlobStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &BlobStore{dir: dir, logger: logger}, nil
}

// Dir returns the directory holding the collection files
func (s *BlobStore) Dir() string {
	return s.dir
}

func (s *BlobStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// readList loads a collection. Missing files are empty; malformed files are
// logged and treated as empty.
func readList[T any](s *BlobStore, key string) ([]T, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("discarding malformed collection", "key", key, "error", err)
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// writeList replaces a collection atomically via temp file and rename
func writeList[T any](s *BlobStore, key string, items []T) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close %s: %w", key, err)
	}
	if err := os.Rename(tmpPath, s.path(key)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

func appendItem[T any](s *BlobStore, key string, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := readList[T](s, key)
	if err != nil {
		return err
	}
	return writeList(s, key, append(items, item))
}

func listItems[T any](s *BlobStore, key string) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readList[T](s, key)
}

// SaveAnalysis appends a completed analysis
func (s *BlobStore) SaveAnalysis(_ context.Context, a model.StoredAnalysis) error {
	return appendItem(s, KeyAnalyses, a)
}

// ListAnalyses returns all analyses in append order
func (s *BlobStore) ListAnalyses(_ context.Context) ([]model.StoredAnalysis, error) {
	return listItems[model.StoredAnalysis](s, KeyAnalyses)
}

// SaveVote appends a fact-based vote
func (s *BlobStore) SaveVote(_ context.Context, v model.Vote) error {
	return appendItem(s, KeyVotes, v)
}

// ListVotes returns all fact-based votes
func (s *BlobStore) ListVotes(_ context.Context) ([]model.Vote, error) {
	return listItems[model.Vote](s, KeyVotes)
}

// SaveCustomVote appends a custom-statement vote
func (s *BlobStore) SaveCustomVote(_ context.Context, v model.Vote) error {
	return appendItem(s, KeyCustomVotes, v)
}

// ListCustomVotes returns all custom-statement votes
func (s *BlobStore) ListCustomVotes(_ context.Context) ([]model.Vote, error) {
	return listItems[model.Vote](s, KeyCustomVotes)
}

// SaveCustomStatement appends a custom statement
func (s *BlobStore) SaveCustomStatement(_ context.Context, cs model.CustomStatement) error {
	return appendItem(s, KeyCustomStatements, cs)
}

// GetCustomStatement finds a custom statement by id
func (s *BlobStore) GetCustomStatement(_ context.Context, id string) (model.CustomStatement, bool, error) {
	items, err := listItems[model.CustomStatement](s, KeyCustomStatements)
	if err != nil {
		return model.CustomStatement{}, false, err
	}
	for _, cs := range items {
		if cs.ID == id {
			return cs, true, nil
		}
	}
	return model.CustomStatement{}, false, nil
}

// UpdateCustomStatementAnalysis marks the statement analysed in place
func (s *BlobStore) UpdateCustomStatementAnalysis(_ context.Context, id string, result model.CustomAnalysis) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := readList[model.CustomStatement](s, KeyCustomStatements)
	if err != nil {
		return false, err
	}
	for i := range items {
		if items[i].ID == id {
			items[i].MarkAnalyzed(result)
			return true, writeList(s, KeyCustomStatements, items)
		}
	}
	return false, nil
}

// ListCustomStatements returns all custom statements in submission order
func (s *BlobStore) ListCustomStatements(_ context.Context) ([]model.CustomStatement, error) {
	return listItems[model.CustomStatement](s, KeyCustomStatements)
}

// Close is a no-op for the blob store
func (s *BlobStore) Close() error {
	return nil
}
