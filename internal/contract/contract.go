// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/zarmaks/gitfolio/schema"
)

// RepoFetcher defines the data-fetch operations the analysis pipeline needs.
// This allows the engine and commands to be tested without hitting the
// GitHub API.
type RepoFetcher interface {
	// FetchSnapshots retrieves the user's account metadata and the full set
	// of repository snapshots for that user.
	FetchSnapshots(ctx context.Context, username string) (*schema.SnapshotSet, error)
}

// CacheManager defines the interface for managing persistence stores.
// This allows the storage layer to be mocked for testing.
type CacheManager interface {
	GetSnapshotStore() SnapshotStore
	GetHistoryStore() HistoryStore
}

// SnapshotStore defines the interface for cached snapshot storage, keyed by
// username. Values are serialized snapshot sets; version guards against
// schema drift between releases.
type SnapshotStore interface {
	Get(username string) ([]byte, int, int64, error)
	Set(username string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for tracking analysis runs and storing
// per-repository scores over time.
type HistoryStore interface {
	// BeginAnalysis creates a new analysis run and returns its unique ID
	BeginAnalysis(username string, startTime time.Time, configParams map[string]any) (int64, error)

	// EndAnalysis updates the analysis run with completion data
	EndAnalysis(analysisID int64, endTime time.Time, totalRepos int, averageScore float64) error

	// RecordRepoScore stores the scored result for one repository
	RecordRepoScore(analysisID int64, record schema.RepoScoreRecord) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllAnalysisRuns retrieves every recorded analysis run, oldest first
	GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error)

	// GetAllRepoScores retrieves every recorded repository score
	GetAllRepoScores() ([]schema.RepoScoreRecord, error)

	// Close closes the underlying connection
	Close() error
}
