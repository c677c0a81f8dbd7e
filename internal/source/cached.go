package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aresleonardo123/dashboard-trl/internal/storage"
)

var errNoRemote = errors.New("no remote source configured")

// Cached serves rows from a stored dataset, falling back to the remote
// source (and storing its result) when the dataset is missing or unreadable.
type Cached struct {
	store  storage.Client
	remote Source
	key    string
	logger *zap.Logger
}

// NewCached creates a Cached source. remote may be nil for offline use.
func NewCached(store storage.Client, remote Source, key string, logger *zap.Logger) *Cached {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cached{store: store, remote: remote, key: key, logger: logger}
}

// Fetch returns the stored dataset if present, otherwise the remote rows.
func (c *Cached) Fetch(ctx context.Context) ([]Row, error) {
	rows, cacheErr := c.load(ctx)
	if cacheErr == nil {
		return rows, nil
	}
	c.logger.Info("stored dataset unavailable, fetching remote",
		zap.String("key", c.key),
		zap.Error(cacheErr),
	)

	rows, remoteErr := c.fetchRemote(ctx)
	if remoteErr != nil {
		return nil, &SourceUnavailableError{CacheErr: cacheErr, RemoteErr: remoteErr}
	}
	return rows, nil
}

// Refresh always fetches from the remote source and replaces the stored dataset.
func (c *Cached) Refresh(ctx context.Context) ([]Row, error) {
	rows, err := c.fetchRemote(ctx)
	if err != nil {
		return nil, fmt.Errorf("refreshing from remote: %w", err)
	}
	return rows, nil
}

func (c *Cached) load(ctx context.Context) ([]Row, error) {
	data, err := c.store.GetDataset(ctx, c.key)
	if err != nil {
		return nil, err
	}
	rows, err := DecodeCSV(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding stored dataset: %w", err)
	}
	return rows, nil
}

func (c *Cached) fetchRemote(ctx context.Context) ([]Row, error) {
	if c.remote == nil {
		return nil, errNoRemote
	}
	rows, err := c.remote.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return rows, nil
	}

	data, err := EncodeCSV(rows)
	if err != nil {
		return nil, fmt.Errorf("encoding dataset: %w", err)
	}
	if err := c.store.PutDataset(ctx, c.key, data); err != nil {
		c.logger.Warn("storing dataset failed", zap.String("key", c.key), zap.Error(err))
	}
	return rows, nil
}
