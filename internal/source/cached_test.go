package source

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aresleonardo123/dashboard-trl/internal/storage"
	"github.com/aresleonardo123/dashboard-trl/pkg/scoring"
)

type stubSource struct {
	rows  []Row
	err   error
	calls int
}

func (s *stubSource) Fetch(ctx context.Context) ([]Row, error) {
	s.calls++
	return s.rows, s.err
}

func TestCSVRoundTripKeepsMissingCellsMissing(t *testing.T) {
	rows := []Row{
		{"1": "Solar, Dryer", "14": "5"},
		{"1": "Water Filter", "17": "Avanzado"},
	}
	data, err := EncodeCSV(rows)
	require.NoError(t, err)

	got, err := DecodeCSV(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestCachedPrefersStoredDataset(t *testing.T) {
	ctx := context.Background()
	store := storage.NewLocalStorage(t.TempDir())
	data, _ := EncodeCSV([]Row{{"1": "Stored"}})
	require.NoError(t, store.PutDataset(ctx, "submissions", data))

	remote := &stubSource{rows: []Row{{"1": "Remote"}}}
	rows, err := NewCached(store, remote, "submissions", nil).Fetch(ctx)

	require.NoError(t, err)
	assert.Equal(t, []Row{{"1": "Stored"}}, rows)
	assert.Equal(t, 0, remote.calls)
}

func TestCachedFallsBackToRemoteAndStores(t *testing.T) {
	ctx := context.Background()
	store := storage.NewLocalStorage(t.TempDir())
	remote := &stubSource{rows: []Row{{"1": "Remote"}}}
	c := NewCached(store, remote, "submissions", nil)

	rows, err := c.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Row{{"1": "Remote"}}, rows)

	// Second fetch is served from storage.
	remote.rows = []Row{{"1": "Changed"}}
	rows, err = c.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Row{{"1": "Remote"}}, rows)
	assert.Equal(t, 1, remote.calls)

	rows, err = c.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Row{{"1": "Changed"}}, rows)
}

func TestCachedSourceUnavailable(t *testing.T) {
	store := storage.NewLocalStorage(t.TempDir())
	remoteErr := errors.New("connection refused")

	_, err := NewCached(store, &stubSource{err: remoteErr}, "submissions", nil).Fetch(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.ErrorIs(t, err, remoteErr)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	var sue *SourceUnavailableError
	assert.ErrorAs(t, err, &sue)
}

func TestCachedWithoutRemote(t *testing.T) {
	_, err := NewCached(storage.NewLocalStorage(t.TempDir()), nil, "x", nil).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestDictionaryLoaderFallsBackToFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "dictionary.csv")
	require.NoError(t, os.WriteFile(path, []byte("question,answer,segment,points\nq,Local,TRL 1-3,3\n"), 0o644))

	store := storage.NewLocalStorage(filepath.Join(dir, "blobs"))
	l := DictionaryLoader{Store: store, ID: "default", Path: path}

	d, err := l.Load(ctx)
	require.NoError(t, err)
	_, ok := d.Lookup("Local")
	assert.True(t, ok)

	require.NoError(t, store.PutDictionary(ctx, "default", []byte("question,answer,segment,points\nq,Stored,TRL 8-9,9\n")))
	d, err = l.Load(ctx)
	require.NoError(t, err)
	_, ok = d.Lookup("Stored")
	assert.True(t, ok)
}

func TestDictionaryLoaderConfigError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dictionary.csv")
	require.NoError(t, os.WriteFile(path, []byte("question,answer\nq,a\n"), 0o644))

	_, err := DictionaryLoader{Path: path}.Load(context.Background())
	assert.ErrorIs(t, err, scoring.ErrConfig)
}
