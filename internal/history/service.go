// Package history records refresh runs of the scoring pipeline in Postgres.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Run is one pipeline refresh.
type Run struct {
	ID          uuid.UUID  `json:"id"`
	DatasetKey  string     `json:"dataset_key"`
	Trigger     string     `json:"trigger"`
	Status      string     `json:"status"`
	Submissions int        `json:"submissions"`
	Approved    int        `json:"approved"`
	ApprovedPct float64    `json:"approved_pct"`
	Error       *string    `json:"error,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
}

// Service provides run bookkeeping backed by Postgres.
type Service struct {
	db *sql.DB
}

// NewService creates a new history Service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

const runColumns = `id, dataset_key, trigger, status, submissions, approved, approved_pct, error, started_at, finished_at`

func scanRun(row interface{ Scan(...any) error }) (*Run, error) {
	r := &Run{}
	err := row.Scan(&r.ID, &r.DatasetKey, &r.Trigger, &r.Status, &r.Submissions, &r.Approved,
		&r.ApprovedPct, &r.Error, &r.StartedAt, &r.FinishedAt)
	return r, err
}

// StartRun inserts a running record.
func (s *Service) StartRun(ctx context.Context, id uuid.UUID, datasetKey, trigger string) (*Run, error) {
	r, err := scanRun(s.db.QueryRowContext(ctx,
		`INSERT INTO refresh_runs (id, dataset_key, trigger, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+runColumns,
		id, datasetKey, trigger, StatusRunning,
	))
	if err != nil {
		return nil, fmt.Errorf("start run: %w", err)
	}
	return r, nil
}

// CompleteRun marks a run completed with its result counts.
func (s *Service) CompleteRun(ctx context.Context, id uuid.UUID, submissions, approved int, approvedPct float64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE refresh_runs
		 SET status = $2, submissions = $3, approved = $4, approved_pct = $5, finished_at = now()
		 WHERE id = $1`,
		id, StatusCompleted, submissions, approved, approvedPct,
	)
	if err != nil {
		return fmt.Errorf("complete run %s: %w", id, err)
	}
	return nil
}

// FailRun marks a run failed.
func (s *Service) FailRun(ctx context.Context, id uuid.UUID, reason string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE refresh_runs SET status = $2, error = $3, finished_at = now() WHERE id = $1`,
		id, StatusFailed, reason,
	)
	if err != nil {
		return fmt.Errorf("fail run %s: %w", id, err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *Service) GetRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	r, err := scanRun(s.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM refresh_runs WHERE id = $1`, id,
	))
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return r, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Service) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM refresh_runs ORDER BY started_at DESC LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}
