package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aresleonardo123/dashboard-trl/internal/storage"
	"github.com/aresleonardo123/dashboard-trl/pkg/scoring"
)

// DictionaryLoader reads the answer dictionary from blob storage, falling
// back to a local file when the blob does not exist.
type DictionaryLoader struct {
	Store storage.Client
	ID    string
	Path  string
}

// Load returns a freshly parsed dictionary. Malformed tables surface as
// scoring.ErrConfig.
func (l DictionaryLoader) Load(ctx context.Context) (*scoring.Dictionary, error) {
	if l.Store != nil && l.ID != "" {
		data, err := l.Store.GetDictionary(ctx, l.ID)
		switch {
		case err == nil:
			return scoring.LoadDictionaryCSV(bytes.NewReader(data))
		case !errors.Is(err, storage.ErrNotFound):
			return nil, fmt.Errorf("reading dictionary %q: %w", l.ID, err)
		}
	}
	if l.Path == "" {
		return nil, fmt.Errorf("dictionary %q not found and no local path configured", l.ID)
	}
	return LoadDictionaryFile(l.Path)
}

// LoadDictionaryFile parses the dictionary CSV at path.
func LoadDictionaryFile(path string) (*scoring.Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dictionary: %w", err)
	}
	defer f.Close()

	d, err := scoring.LoadDictionaryCSV(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return d, nil
}
