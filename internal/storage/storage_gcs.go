package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
)

// GCSStorage implements Client using Google Cloud Storage.
type GCSStorage struct {
	client *gcs.Client
	bucket string
	prefix string
}

// NewGCSStorage creates a GCS-backed Client.
// It uses Application Default Credentials (works with Workload Identity, SA keys, gcloud auth).
func NewGCSStorage(ctx context.Context, bucket, prefix string) (*GCSStorage, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return &GCSStorage{client: client, bucket: bucket, prefix: prefix}, nil
}

func (s *GCSStorage) put(ctx context.Context, key string, data []byte) error {
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = "text/csv"
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("gcs write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs close %s: %w", key, err)
	}
	return nil
}

func (s *GCSStorage) get(ctx context.Context, key string) ([]byte, error) {
	r, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return nil, fmt.Errorf("gcs read %s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("gcs read %s: %w", key, err)
	}
	defer r.Close()
	return io.ReadAll(r)
}

func (s *GCSStorage) PutDataset(ctx context.Context, id string, data []byte) error {
	return s.put(ctx, objectKey(s.prefix, KindDatasets, id), data)
}

func (s *GCSStorage) GetDataset(ctx context.Context, id string) ([]byte, error) {
	return s.get(ctx, objectKey(s.prefix, KindDatasets, id))
}

func (s *GCSStorage) PutDictionary(ctx context.Context, id string, data []byte) error {
	return s.put(ctx, objectKey(s.prefix, KindDictionaries, id), data)
}

func (s *GCSStorage) GetDictionary(ctx context.Context, id string) ([]byte, error) {
	return s.get(ctx, objectKey(s.prefix, KindDictionaries, id))
}
