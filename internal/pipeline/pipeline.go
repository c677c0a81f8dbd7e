// Package pipeline loads submissions and the answer dictionary, scores every
// submission and records refresh runs.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aresleonardo123/dashboard-trl/internal/cache"
	"github.com/aresleonardo123/dashboard-trl/internal/history"
	"github.com/aresleonardo123/dashboard-trl/internal/source"
	"github.com/aresleonardo123/dashboard-trl/pkg/config"
	"github.com/aresleonardo123/dashboard-trl/pkg/insight"
	"github.com/aresleonardo123/dashboard-trl/pkg/report"
	"github.com/aresleonardo123/dashboard-trl/pkg/scoring"
	"github.com/aresleonardo123/dashboard-trl/pkg/submission"
)

// Refresh triggers.
const (
	TriggerAPI     = "api"
	TriggerCLI     = "cli"
	TriggerStartup = "startup"
	TriggerWebhook = "webhook"
)

// DictionarySource supplies the answer dictionary.
type DictionarySource interface {
	Load(ctx context.Context) (*scoring.Dictionary, error)
}

// RowSource supplies raw rows, either stored or freshly fetched.
type RowSource interface {
	Fetch(ctx context.Context) ([]source.Row, error)
	Refresh(ctx context.Context) ([]source.Row, error)
}

// RunRecorder persists refresh runs. history.Service implements it.
type RunRecorder interface {
	StartRun(ctx context.Context, id uuid.UUID, datasetKey, trigger string) (*history.Run, error)
	CompleteRun(ctx context.Context, id uuid.UUID, submissions, approved int, approvedPct float64) error
	FailRun(ctx context.Context, id uuid.UUID, reason string) error
}

// Dataset is one scored snapshot of every submission.
type Dataset struct {
	Items     []scoring.Scored
	Threshold float64
	Insights  *insight.Generator
	LoadedAt  time.Time
}

// InsightsFor returns the findings for one scored submission.
func (d *Dataset) InsightsFor(s scoring.Scored) []string {
	return d.Insights.Generate(s)
}

// Service wires the sources, cache and run log together.
type Service struct {
	cfg    *config.Config
	dict   DictionarySource
	rows   RowSource
	cache  cache.RowCache
	runs   RunRecorder
	logger *zap.Logger
}

// NewService creates a pipeline Service. rowCache and runs may be nil.
func NewService(cfg *config.Config, dict DictionarySource, rows RowSource, rowCache cache.RowCache, runs RunRecorder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cfg:    cfg,
		dict:   dict,
		rows:   rows,
		cache:  rowCache,
		runs:   runs,
		logger: logger,
	}
}

// Load scores the current dataset, serving rows from the cache when possible.
func (s *Service) Load(ctx context.Context) (*Dataset, error) {
	var (
		dict *scoring.Dictionary
		rows []source.Row
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dict, err = s.dict.Load(gctx)
		if err != nil {
			return fmt.Errorf("load dictionary: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		rows, err = s.cachedRows(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s.score(dict, rows)
}

// Refresh refetches rows from the remote source, replaces the cached copy and
// records the run.
func (s *Service) Refresh(ctx context.Context, trigger string) (ds *Dataset, err error) {
	runID := uuid.New()
	key := s.cfg.Source.DatasetKey
	log := s.logger.With(zap.String("run_id", runID.String()), zap.String("trigger", trigger))

	if s.runs != nil {
		if _, err := s.runs.StartRun(ctx, runID, key, trigger); err != nil {
			log.Warn("recording run start failed", zap.Error(err))
		}
		defer func() {
			if err != nil {
				if ferr := s.runs.FailRun(ctx, runID, err.Error()); ferr != nil {
					log.Warn("recording run failure failed", zap.Error(ferr))
				}
			}
		}()
	}

	dict, err := s.dict.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}
	rows, err := s.rows.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		// An empty refresh leaves the stored dataset in place, so drop the
		// cached copy and let the next load read storage again.
		if len(rows) == 0 {
			if cerr := s.cache.Delete(ctx, key); cerr != nil {
				log.Warn("dropping cached rows failed", zap.Error(cerr))
			}
		} else if cerr := s.cache.Set(ctx, key, rows); cerr != nil {
			log.Warn("caching rows failed", zap.Error(cerr))
		}
	}

	ds, err = s.score(dict, rows)
	if err != nil {
		return nil, err
	}

	sum := report.Summarize(ds.Items)
	if s.runs != nil {
		if cerr := s.runs.CompleteRun(ctx, runID, sum.Total, sum.Approved, sum.ApprovedPct); cerr != nil {
			log.Warn("recording run completion failed", zap.Error(cerr))
		}
	}
	log.Info("refresh completed",
		zap.Int("submissions", sum.Total),
		zap.Int("approved", sum.Approved),
	)
	return ds, nil
}

func (s *Service) cachedRows(ctx context.Context) ([]source.Row, error) {
	key := s.cfg.Source.DatasetKey
	if s.cache != nil {
		rows, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("row cache read failed", zap.String("key", key), zap.Error(err))
		} else if rows != nil {
			return rows, nil
		}
	}

	rows, err := s.rows.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, rows); err != nil {
			s.logger.Warn("row cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return rows, nil
}

func (s *Service) score(dict *scoring.Dictionary, rows []source.Row) (*Dataset, error) {
	if dict != nil {
		s.logger.Debug("dictionary loaded", zap.Int("answers", dict.Len()))
		for _, answer := range dict.Overwritten() {
			s.logger.Warn("duplicate dictionary answer, later entry wins", zap.String("answer", answer))
		}
	}
	return Score(s.cfg, dict, rows)
}

// Score parses and scores rows with cfg. It is the pure core shared by the
// service and the CLI.
func Score(cfg *config.Config, dict *scoring.Dictionary, rows []source.Row) (*Dataset, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	engine, err := scoring.NewEngine(dict, cfg.Scoring, scoring.BonusesFor(cfg.Scoring)...)
	if err != nil {
		return nil, err
	}
	subs := submission.ParseAll(source.Maps(rows), cfg.Fields)
	return &Dataset{
		Items:     engine.ScoreAll(subs),
		Threshold: engine.Threshold(),
		Insights:  insight.NewGenerator(cfg.Insights),
		LoadedAt:  time.Now(),
	}, nil
}
