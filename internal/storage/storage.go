// Package storage persists submission datasets and answer dictionaries as
// blobs on the local filesystem, S3 or GCS.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned (wrapped) when a blob does not exist.
var ErrNotFound = errors.New("blob not found")

// Blob kinds.
const (
	KindDatasets     = "datasets"
	KindDictionaries = "dictionaries"
)

// Client abstracts blob storage for datasets and dictionaries. Both are CSV.
type Client interface {
	PutDataset(ctx context.Context, id string, data []byte) error
	GetDataset(ctx context.Context, id string) ([]byte, error)
	PutDictionary(ctx context.Context, id string, data []byte) error
	GetDictionary(ctx context.Context, id string) ([]byte, error)
}

// LocalStorage implements Client using the local filesystem.
// Useful for development, the CLI and testing.
type LocalStorage struct {
	BaseDir string
}

// NewLocalStorage creates a LocalStorage rooted at the given directory.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir}
}

func (s *LocalStorage) path(kind, id string) string {
	return filepath.Join(s.BaseDir, kind, id+".csv")
}

func (s *LocalStorage) put(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *LocalStorage) get(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return data, err
}

// PutDataset stores a submissions dataset.
func (s *LocalStorage) PutDataset(ctx context.Context, id string, data []byte) error {
	return s.put(s.path(KindDatasets, id), data)
}

// GetDataset retrieves a submissions dataset.
func (s *LocalStorage) GetDataset(ctx context.Context, id string) ([]byte, error) {
	return s.get(s.path(KindDatasets, id))
}

// PutDictionary stores an answer dictionary table.
func (s *LocalStorage) PutDictionary(ctx context.Context, id string, data []byte) error {
	return s.put(s.path(KindDictionaries, id), data)
}

// GetDictionary retrieves an answer dictionary table.
func (s *LocalStorage) GetDictionary(ctx context.Context, id string) ([]byte, error) {
	return s.get(s.path(KindDictionaries, id))
}

func objectKey(prefix, kind, id string) string {
	if prefix == "" {
		return kind + "/" + id + ".csv"
	}
	return prefix + "/" + kind + "/" + id + ".csv"
}
