package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/aresleonardo123/dashboard-trl/internal/logging"
	"github.com/aresleonardo123/dashboard-trl/internal/pipeline"
	"github.com/aresleonardo123/dashboard-trl/internal/source"
	"github.com/aresleonardo123/dashboard-trl/internal/storage"
	"github.com/aresleonardo123/dashboard-trl/pkg/config"
)

const dictionaryID = "dictionary"

// formPasswordEnv holds the form API password; it is never read from the
// config file.
const formPasswordEnv = "TRL_FORM_PASSWORD"

type globalOpts struct {
	configPath string
	dictionary string
	data       string
	cacheDir   string
	verbose    bool
}

// env is everything a subcommand needs to score the dataset.
type env struct {
	cfg      *config.Config
	logger   *zap.Logger
	pipeline *pipeline.Service
}

func (o *globalOpts) setup() (*env, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	cfg, err := loadConfig(firstNonEmpty(o.configPath, config.FindConfigFile(wd)))
	if err != nil {
		return nil, err
	}
	if o.dictionary != "" {
		cfg.Source.DictionaryPath = o.dictionary
	}

	logger := logging.NewCLI(o.verbose)
	store := storage.NewLocalStorage(firstNonEmpty(o.cacheDir, config.CacheDir(wd)))

	var rows pipeline.RowSource
	if o.data != "" {
		rows = fileRows{path: o.data}
	} else {
		rows = source.NewCached(store, remoteSource(cfg, logger), cfg.Source.DatasetKey, logger)
	}

	dict := source.DictionaryLoader{Store: store, ID: dictionaryID, Path: cfg.Source.DictionaryPath}
	return &env{
		cfg:      cfg,
		logger:   logger,
		pipeline: pipeline.NewService(cfg, dict, rows, nil, nil, logger),
	}, nil
}

// loadConfig loads the config at path, or the defaults when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	return cfg, nil
}

// remoteSource returns the configured form client, or nil when no form URL
// is set.
func remoteSource(cfg *config.Config, logger *zap.Logger) source.Source {
	if cfg.Source.FormURL == "" {
		return nil
	}
	return source.NewGravityForms(source.GravityFormsConfig{
		URL:        cfg.Source.FormURL,
		Username:   cfg.Source.Username,
		Password:   os.Getenv(formPasswordEnv),
		PageSize:   cfg.Source.PageSize,
		MaxRetries: cfg.Source.MaxRetries,
		Timeout:    time.Duration(cfg.Source.Timeout) * time.Second,
	}, logger)
}

var errNoRemoteForData = errors.New("--data reads a local file; refresh needs source.form_url")

// fileRows serves submissions from a CSV file on disk.
type fileRows struct {
	path string
}

func (f fileRows) Fetch(ctx context.Context) ([]source.Row, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("opening submissions: %w", err)
	}
	defer file.Close()

	rows, err := source.DecodeCSV(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}
	return rows, nil
}

func (f fileRows) Refresh(ctx context.Context) ([]source.Row, error) {
	return nil, errNoRemoteForData
}

// firstNonEmpty returns the first non-empty string from the arguments.
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
