package history

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aresleonardo123/dashboard-trl/internal/platform"
)

func TestNewService(t *testing.T) {
	// NewService only stores the handle.
	if NewService(nil) == nil {
		t.Fatal("NewService returned nil")
	}
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TRL_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TRL_TEST_DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, platform.AutoMigrate(db))
	return db
}

func TestRunLifecycle(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	id := uuid.New()
	run, err := svc.StartRun(ctx, id, "submissions", "test")
	require.NoError(t, err)
	assert.Equal(t, StatusRunning, run.Status)
	assert.Nil(t, run.FinishedAt)

	require.NoError(t, svc.CompleteRun(ctx, id, 12, 3, 25))
	got, err := svc.GetRun(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)
	assert.Equal(t, 12, got.Submissions)
	assert.Equal(t, 25.0, got.ApprovedPct)
	assert.NotNil(t, got.FinishedAt)

	failed := uuid.New()
	_, err = svc.StartRun(ctx, failed, "submissions", "test")
	require.NoError(t, err)
	require.NoError(t, svc.FailRun(ctx, failed, "source unavailable"))

	runs, err := svc.ListRuns(ctx, 5)
	require.NoError(t, err)
	require.NotEmpty(t, runs)
	assert.Equal(t, failed, runs[0].ID)
	require.NotNil(t, runs[0].Error)
	assert.Equal(t, "source unavailable", *runs[0].Error)
}
