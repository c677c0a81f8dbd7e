package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aresleonardo123/dashboard-trl/internal/storage"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "local", cfg.StorageBackend)
	assert.Equal(t, "/tmp/trlscope-data", cfg.StoragePath)
	assert.False(t, cfg.Debug)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("TRL_PORT", "9090")
	t.Setenv("TRL_STORAGE_BACKEND", "s3")
	t.Setenv("TRL_BUCKET", "trl-datasets")
	t.Setenv("TRL_API_KEY", "secret")
	t.Setenv("TRL_DEBUG", "true")

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "s3", cfg.StorageBackend)
	assert.Equal(t, "trl-datasets", cfg.Bucket)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.True(t, cfg.Debug)
}

func TestLoadConfigRejectsBadBackend(t *testing.T) {
	t.Setenv("TRL_STORAGE_BACKEND", "ftp")
	_, err := loadConfig()
	assert.Error(t, err)
}

func TestLoadConfigBucketRequired(t *testing.T) {
	t.Setenv("TRL_STORAGE_BACKEND", "gcs")
	_, err := loadConfig()
	assert.ErrorContains(t, err, "TRL_BUCKET")
}

func TestNewStorageLocal(t *testing.T) {
	dir := t.TempDir()
	st, err := newStorage(context.Background(), serviceConfig{StorageBackend: "local", StoragePath: dir})
	require.NoError(t, err)
	assert.IsType(t, &storage.LocalStorage{}, st)
}
