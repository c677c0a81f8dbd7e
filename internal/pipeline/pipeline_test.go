package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aresleonardo123/dashboard-trl/internal/cache"
	"github.com/aresleonardo123/dashboard-trl/internal/history"
	"github.com/aresleonardo123/dashboard-trl/internal/source"
	"github.com/aresleonardo123/dashboard-trl/pkg/config"
	"github.com/aresleonardo123/dashboard-trl/pkg/scoring"
)

type fakeDict struct {
	dict *scoring.Dictionary
	err  error
}

func (f fakeDict) Load(ctx context.Context) (*scoring.Dictionary, error) { return f.dict, f.err }

type fakeRows struct {
	mu       sync.Mutex
	stored   []source.Row
	remote   []source.Row
	err      error
	fetches  int
	refreshs int
}

func (f *fakeRows) Fetch(ctx context.Context) ([]source.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	return f.stored, f.err
}

func (f *fakeRows) Refresh(ctx context.Context) ([]source.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshs++
	return f.remote, f.err
}

type fakeRuns struct {
	started   []uuid.UUID
	completed map[uuid.UUID][3]float64
	failed    map[uuid.UUID]string
}

func newFakeRuns() *fakeRuns {
	return &fakeRuns{completed: map[uuid.UUID][3]float64{}, failed: map[uuid.UUID]string{}}
}

func (f *fakeRuns) StartRun(ctx context.Context, id uuid.UUID, key, trigger string) (*history.Run, error) {
	f.started = append(f.started, id)
	return &history.Run{ID: id, DatasetKey: key, Trigger: trigger, Status: history.StatusRunning}, nil
}

func (f *fakeRuns) CompleteRun(ctx context.Context, id uuid.UUID, subs, approved int, pct float64) error {
	f.completed[id] = [3]float64{float64(subs), float64(approved), pct}
	return nil
}

func (f *fakeRuns) FailRun(ctx context.Context, id uuid.UUID, reason string) error {
	f.failed[id] = reason
	return nil
}

func testDict(t *testing.T) *scoring.Dictionary {
	t.Helper()
	d, err := scoring.BuildDictionary([]scoring.DictionaryRow{
		{Question: "20", Answer: "Selling to customers", Segment: scoring.SegmentLate, Points: 60},
		{Question: "21", Answer: "Lab prototype", Segment: scoring.SegmentMid, Points: 20},
	})
	require.NoError(t, err)
	return d
}

var testRows = []source.Row{
	{"1": "Solar Dryer", "14": "2", "20": "Selling to customers"},
	{"1": "Water Filter", "14": "5", "15": "Si", "17": "avanzado", "21": "Lab prototype"},
}

func TestScore(t *testing.T) {
	ds, err := Score(config.DefaultConfig(), testDict(t), testRows)
	require.NoError(t, err)
	require.Len(t, ds.Items, 2)

	first := ds.Items[0]
	assert.Equal(t, scoring.SegmentEarly, first.Segment)
	assert.Equal(t, scoring.ScoreSet{Late: 60}, first.Scores)
	assert.True(t, first.Approved)

	second := ds.Items[1]
	assert.Equal(t, scoring.ScoreSet{Early: 14, Mid: 34, Late: 14}, second.Scores)
	assert.False(t, second.Approved)
	assert.Equal(t, 50.0, ds.Threshold)
	assert.NotEmpty(t, ds.InsightsFor(second))
}

func TestScoreLooksUpProfileAnswers(t *testing.T) {
	dict, err := scoring.BuildDictionary([]scoring.DictionaryRow{
		{Question: "17", Answer: "Avanzado", Segment: scoring.SegmentMid, Points: 20},
		{Question: "15", Answer: "Si", Segment: scoring.SegmentEarly, Points: 5},
	})
	require.NoError(t, err)

	ds, err := Score(config.DefaultConfig(), dict, []source.Row{
		{"1": "P", "14": "5", "15": "Si", "17": "Avanzado"},
	})
	require.NoError(t, err)
	require.Len(t, ds.Items, 1)

	// Dictionary points plus +4 language and +10 mentor on every segment.
	assert.Equal(t, scoring.ScoreSet{Early: 19, Mid: 34, Late: 14}, ds.Items[0].Scores)
	assert.Equal(t, scoring.SegmentMid, ds.Items[0].Segment)
}

func TestScoreNilDictionary(t *testing.T) {
	_, err := Score(config.DefaultConfig(), nil, testRows)
	assert.ErrorIs(t, err, scoring.ErrNilDictionary)
}

func TestLoadUsesCache(t *testing.T) {
	ctx := context.Background()
	src := &fakeRows{stored: testRows}
	svc := NewService(config.DefaultConfig(), fakeDict{dict: testDict(t)}, src, cache.NewMemoryRows(2), nil, nil)

	ds, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, ds.Items, 2)

	_, err = svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, src.fetches)
}

func TestLoadPropagatesDictionaryError(t *testing.T) {
	svc := NewService(config.DefaultConfig(), fakeDict{err: &scoring.ConfigError{Column: "points", Reason: "missing"}}, &fakeRows{stored: testRows}, nil, nil, nil)

	_, err := svc.Load(context.Background())
	assert.ErrorIs(t, err, scoring.ErrConfig)
}

func TestLoadPropagatesSourceUnavailable(t *testing.T) {
	unavailable := &source.SourceUnavailableError{RemoteErr: errors.New("timeout")}
	svc := NewService(config.DefaultConfig(), fakeDict{dict: testDict(t)}, &fakeRows{err: unavailable}, nil, nil, nil)

	_, err := svc.Load(context.Background())
	assert.ErrorIs(t, err, source.ErrSourceUnavailable)
}

func TestRefreshRecordsRun(t *testing.T) {
	ctx := context.Background()
	rc := cache.NewMemoryRows(2)
	runs := newFakeRuns()
	src := &fakeRows{stored: testRows[:1], remote: testRows}
	svc := NewService(config.DefaultConfig(), fakeDict{dict: testDict(t)}, src, rc, runs, nil)

	ds, err := svc.Refresh(ctx, TriggerAPI)
	require.NoError(t, err)
	assert.Len(t, ds.Items, 2)

	require.Len(t, runs.started, 1)
	assert.Equal(t, [3]float64{2, 1, 50}, runs.completed[runs.started[0]])
	assert.Empty(t, runs.failed)

	cached, _ := rc.Get(ctx, config.DefaultConfig().Source.DatasetKey)
	assert.Len(t, cached, 2)
}

func TestRefreshRecordsFailure(t *testing.T) {
	runs := newFakeRuns()
	svc := NewService(config.DefaultConfig(), fakeDict{dict: testDict(t)}, &fakeRows{err: errors.New("rate limited")}, nil, runs, nil)

	_, err := svc.Refresh(context.Background(), TriggerCLI)
	require.Error(t, err)

	require.Len(t, runs.started, 1)
	assert.Contains(t, runs.failed[runs.started[0]], "rate limited")
	assert.Empty(t, runs.completed)
}

func TestRefreshEmptyDropsCachedRows(t *testing.T) {
	ctx := context.Background()
	key := config.DefaultConfig().Source.DatasetKey
	rc := cache.NewMemoryRows(2)
	require.NoError(t, rc.Set(ctx, key, testRows))

	svc := NewService(config.DefaultConfig(), fakeDict{dict: testDict(t)}, &fakeRows{stored: testRows}, rc, nil, nil)
	ds, err := svc.Refresh(ctx, TriggerAPI)
	require.NoError(t, err)
	assert.Empty(t, ds.Items)

	cached, err := rc.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, cached)
}
