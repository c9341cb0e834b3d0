package schema

import "time"

// AnalysisRunRecord represents a row from the gitfolio_analysis_runs table.
type AnalysisRunRecord struct {
	AnalysisID         int64
	Username           string
	StartTime          time.Time
	EndTime            *time.Time
	RunDurationMs      *int32
	TotalReposAnalyzed int32
	AverageScore       *float64
	ConfigParams       *string
}

// RepoScoreRecord represents a row from the gitfolio_repo_scores table.
type RepoScoreRecord struct {
	AnalysisID         int64
	RepoName           string
	AnalysisTime       time.Time
	PrimaryLanguage    string
	Stars              int32
	Overall            int32
	Tier               string
	ScoreDocumentation float64
	ScoreTesting       float64
	ScoreActivity      float64
	ScorePopularity    float64
	ScoreOrganization  float64
	Archived           bool
}

// CacheStatus represents the status of the snapshot cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// HistoryStatus represents the status of the analysis history store.
type HistoryStatus struct {
	Backend            string           `json:"backend"`
	Connected          bool             `json:"connected"`
	TotalRuns          int              `json:"total_runs"`
	LastRunID          int64            `json:"last_run_id"`
	LastRunTime        time.Time        `json:"last_run_time"`
	OldestRunTime      time.Time        `json:"oldest_run_time"`
	TotalReposAnalyzed int              `json:"total_repos_analyzed"`
	TableSizes         map[string]int64 `json:"table_sizes"`
}
