package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStoragePutGetDataset(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir)
	ctx := context.Background()

	data := []byte("1,14\nSolar Dryer,5\n")
	if err := s.PutDataset(ctx, "submissions", data); err != nil {
		t.Fatalf("PutDataset: %v", err)
	}

	got, err := s.GetDataset(ctx, "submissions")
	if err != nil {
		t.Fatalf("GetDataset: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("GetDataset = %q, want %q", got, data)
	}

	expectedPath := filepath.Join(dir, "datasets", "submissions.csv")
	if _, err := os.Stat(expectedPath); err != nil {
		t.Errorf("expected file at %s: %v", expectedPath, err)
	}
}

func TestLocalStoragePutGetDictionary(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir)
	ctx := context.Background()

	data := []byte("question,answer,segment,points\n")
	if err := s.PutDictionary(ctx, "default", data); err != nil {
		t.Fatalf("PutDictionary: %v", err)
	}

	got, err := s.GetDictionary(ctx, "default")
	if err != nil {
		t.Fatalf("GetDictionary: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("GetDictionary = %q, want %q", got, data)
	}

	expectedPath := filepath.Join(dir, "dictionaries", "default.csv")
	if _, err := os.Stat(expectedPath); err != nil {
		t.Errorf("expected file at %s: %v", expectedPath, err)
	}
}

func TestLocalStorageGetNotFound(t *testing.T) {
	s := NewLocalStorage(t.TempDir())

	_, err := s.GetDataset(context.Background(), "nonexistent")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestObjectKey(t *testing.T) {
	if got := objectKey("", KindDatasets, "a"); got != "datasets/a.csv" {
		t.Errorf("objectKey without prefix = %q", got)
	}
	if got := objectKey("cohort-2025", KindDictionaries, "b"); got != "cohort-2025/dictionaries/b.csv" {
		t.Errorf("objectKey with prefix = %q", got)
	}
}
