package iocache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zarmaks/gitfolio/schema"
)

func sampleRepoScoreRecord(name string) schema.RepoScoreRecord {
	return schema.RepoScoreRecord{
		RepoName:           name,
		AnalysisTime:       time.Now(),
		PrimaryLanguage:    "Go",
		Stars:              7,
		Overall:            62,
		Tier:               string(schema.GoodTier),
		ScoreDocumentation: 0.85,
		ScoreTesting:       0.7,
		ScoreActivity:      1.0,
		ScorePopularity:    0.3,
		ScoreOrganization:  0.4,
		Archived:           false,
	}
}

func TestHistoryStore_NoneBackend(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// BeginAnalysis should return 0 for NoneBackend
	analysisID, err := store.BeginAnalysis("octocat", time.Now(), map[string]any{"test": "value"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), analysisID)

	// Other operations should not error
	err = store.EndAnalysis(1, time.Now(), 10, 55.0)
	assert.NoError(t, err)

	err = store.RecordRepoScore(1, sampleRepoScoreRecord("some-repo"))
	assert.NoError(t, err)

	runs, err := store.GetAllAnalysisRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)

	err = store.Close()
	assert.NoError(t, err)
}

func TestHistoryStore_SQLite(t *testing.T) {
	// Use in-memory SQLite for testing
	store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	// Test BeginAnalysis
	startTime := time.Now()
	configParams := map[string]any{
		"limit":   25,
		"refresh": false,
	}
	analysisID, err := store.BeginAnalysis("octocat", startTime, configParams)
	require.NoError(t, err)
	assert.Greater(t, analysisID, int64(0))

	// Test RecordRepoScore
	err = store.RecordRepoScore(analysisID, sampleRepoScoreRecord("ml-pipeline"))
	assert.NoError(t, err)

	// Test EndAnalysis
	err = store.EndAnalysis(analysisID, time.Now(), 1, 62.0)
	assert.NoError(t, err)
}

func TestHistoryStore_MultipleRepos(t *testing.T) {
	store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	analysisID, err := store.BeginAnalysis("octocat", time.Now(), map[string]any{"test": "multi-repo"})
	require.NoError(t, err)

	repos := []string{"repo-a", "repo-b", "repo-c"}
	for _, repo := range repos {
		err = store.RecordRepoScore(analysisID, sampleRepoScoreRecord(repo))
		assert.NoError(t, err)
	}

	err = store.EndAnalysis(analysisID, time.Now(), len(repos), 62.0)
	assert.NoError(t, err)

	scores, err := store.GetAllRepoScores()
	assert.NoError(t, err)
	assert.Len(t, scores, len(repos))
}

func TestHistoryStore_MultipleRuns(t *testing.T) {
	store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	var analysisIDs []int64
	for i := range 3 {
		id, err := store.BeginAnalysis("octocat", time.Now(), map[string]any{"run": i})
		require.NoError(t, err)
		analysisIDs = append(analysisIDs, id)

		err = store.RecordRepoScore(id, sampleRepoScoreRecord("repo"))
		assert.NoError(t, err)

		err = store.EndAnalysis(id, time.Now(), 1, 50.0+float64(i))
		assert.NoError(t, err)
	}

	// Verify all IDs are unique
	assert.Equal(t, 3, len(analysisIDs))
	assert.NotEqual(t, analysisIDs[0], analysisIDs[1])
	assert.NotEqual(t, analysisIDs[1], analysisIDs[2])
}

func TestHistoryStore_RuntimeCapture(t *testing.T) {
	store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	t.Run("runtime calculation", func(t *testing.T) {
		// Start analysis at a known time
		startTime := time.Now().Add(-100 * time.Millisecond)
		analysisID, err := store.BeginAnalysis("octocat", startTime, map[string]any{"test": "runtime"})
		require.NoError(t, err)

		endTime := time.Now()
		err = store.EndAnalysis(analysisID, endTime, 1, 40.0)
		assert.NoError(t, err)

		// Query the database to verify runtime was captured
		db := store.(*HistoryStoreImpl).db
		var storedStartTime, storedEndTime string
		var storedDurationMs int64

		row := db.QueryRow("SELECT start_time, end_time, run_duration_ms FROM gitfolio_analysis_runs WHERE analysis_id = ?", analysisID)
		err = row.Scan(&storedStartTime, &storedEndTime, &storedDurationMs)
		assert.NoError(t, err)

		storedStart, err := time.Parse(time.RFC3339Nano, storedStartTime)
		assert.NoError(t, err)
		storedEnd, err := time.Parse(time.RFC3339Nano, storedEndTime)
		assert.NoError(t, err)

		// Verify duration calculation: should be approximately end - start
		expectedDurationMs := storedEnd.Sub(storedStart).Milliseconds()
		assert.Equal(t, expectedDurationMs, storedDurationMs)
		assert.GreaterOrEqual(t, storedDurationMs, int64(100))
	})

	t.Run("zero duration edge case", func(t *testing.T) {
		startTime := time.Now()
		analysisID, err := store.BeginAnalysis("octocat", startTime, map[string]any{"test": "zero_duration"})
		require.NoError(t, err)

		// End immediately with same time
		err = store.EndAnalysis(analysisID, startTime, 1, 40.0)
		assert.NoError(t, err)

		db := store.(*HistoryStoreImpl).db
		var storedDurationMs int64
		row := db.QueryRow("SELECT run_duration_ms FROM gitfolio_analysis_runs WHERE analysis_id = ?", analysisID)
		err = row.Scan(&storedDurationMs)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), storedDurationMs)
	})
}

func TestHistoryStore_GetAllAnalysisRuns(t *testing.T) {
	store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	// Test empty store
	runs, err := store.GetAllAnalysisRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)

	startTime := time.Now()
	usernames := []string{"octocat", "hubber"}

	var analysisIDs []int64
	for _, username := range usernames {
		id, err := store.BeginAnalysis(username, startTime, map[string]any{"limit": 25})
		require.NoError(t, err)
		analysisIDs = append(analysisIDs, id)

		err = store.EndAnalysis(id, startTime.Add(time.Minute), 3, 61.5)
		assert.NoError(t, err)
	}

	runs, err = store.GetAllAnalysisRuns()
	assert.NoError(t, err)
	assert.Len(t, runs, 2)

	for i, run := range runs {
		assert.Equal(t, analysisIDs[i], run.AnalysisID)
		assert.Equal(t, usernames[i], run.Username)
		assert.Equal(t, int32(3), run.TotalReposAnalyzed)
		require.NotNil(t, run.RunDurationMs)
		assert.Greater(t, *run.RunDurationMs, int32(0))
		require.NotNil(t, run.AverageScore)
		assert.InDelta(t, 61.5, *run.AverageScore, 1e-9)
	}
}

func TestHistoryStore_GetAllRepoScores(t *testing.T) {
	store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	// Test empty store
	scores, err := store.GetAllRepoScores()
	assert.NoError(t, err)
	assert.Empty(t, scores)

	analysisID, err := store.BeginAnalysis("octocat", time.Now(), map[string]any{"test": "scores"})
	require.NoError(t, err)

	record := sampleRepoScoreRecord("ml-pipeline")
	err = store.RecordRepoScore(analysisID, record)
	assert.NoError(t, err)

	err = store.EndAnalysis(analysisID, time.Now(), 1, float64(record.Overall))
	assert.NoError(t, err)

	scores, err = store.GetAllRepoScores()
	assert.NoError(t, err)
	assert.Len(t, scores, 1)

	got := scores[0]
	assert.Equal(t, analysisID, got.AnalysisID)
	assert.Equal(t, "ml-pipeline", got.RepoName)
	assert.Equal(t, "Go", got.PrimaryLanguage)
	assert.Equal(t, int32(7), got.Stars)
	assert.Equal(t, int32(62), got.Overall)
	assert.Equal(t, string(schema.GoodTier), got.Tier)
	assert.Equal(t, record.ScoreDocumentation, got.ScoreDocumentation)
	assert.False(t, got.Archived)
}

func TestHistoryStore_GetStatus(t *testing.T) {
	store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	// Empty store status
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalRuns)

	// Record one run with two repos
	analysisID, err := store.BeginAnalysis("octocat", time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordRepoScore(analysisID, sampleRepoScoreRecord("a")))
	require.NoError(t, store.RecordRepoScore(analysisID, sampleRepoScoreRecord("b")))
	require.NoError(t, store.EndAnalysis(analysisID, time.Now(), 2, 62.0))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalRuns)
	assert.Equal(t, analysisID, status.LastRunID)
	assert.False(t, status.LastRunTime.IsZero())
	assert.Equal(t, 2, status.TotalReposAnalyzed)
	assert.Equal(t, int64(1), status.TableSizes[analysisRunsTable])
	assert.Equal(t, int64(2), status.TableSizes[repoScoresTable])
}

func TestHistoryStore_UnsupportedBackend(t *testing.T) {
	_, err := NewHistoryStore("unsupported", "")
	assert.Error(t, err)
}
