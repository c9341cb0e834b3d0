// Package parquet provides data structures and functions for exporting
// analysis history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/zarmaks/gitfolio/schema"
)

// AnalysisRun represents a single portfolio analysis run with metadata.
// This struct maps to the gitfolio_analysis_runs database table.
type AnalysisRun struct {
	// AnalysisID is the unique identifier for this analysis run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// Username is the GitHub account that was analyzed
	Username string `parquet:"username,snappy"`

	// StartTime is when the analysis began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the analysis completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the analysis run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalReposAnalyzed is the number of repositories analyzed in this run
	TotalReposAnalyzed int32 `parquet:"total_repos_analyzed,snappy"`

	// AverageScore is the portfolio-wide average quality score (nullable)
	AverageScore *float64 `parquet:"average_score,optional,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// RepoScore represents the scored result for one repository in an analysis.
// This struct maps to the gitfolio_repo_scores database table.
type RepoScore struct {
	// AnalysisID references the parent analysis run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// RepoName is the name of the repository
	RepoName string `parquet:"repo_name,snappy"`

	// AnalysisTime is when this repository was scored (stored as TIMESTAMP with nanosecond precision)
	AnalysisTime time.Time `parquet:"analysis_time,snappy"`

	// PrimaryLanguage is the repository's dominant language
	PrimaryLanguage string `parquet:"primary_language,snappy"`

	// Stars is the stargazer count at analysis time
	Stars int32 `parquet:"stars,snappy"`

	// Overall is the repository quality score on the 0-100 scale
	Overall int32 `parquet:"overall,snappy"`

	// Tier is the quality tier label derived from the overall score
	Tier string `parquet:"tier,snappy"`

	// ScoreDocumentation is the documentation criterion score (0-1)
	ScoreDocumentation float64 `parquet:"score_documentation,snappy"`

	// ScoreTesting is the testing criterion score (0-1)
	ScoreTesting float64 `parquet:"score_testing,snappy"`

	// ScoreActivity is the activity criterion score (0-1)
	ScoreActivity float64 `parquet:"score_activity,snappy"`

	// ScorePopularity is the popularity criterion score (0-1)
	ScorePopularity float64 `parquet:"score_popularity,snappy"`

	// ScoreOrganization is the organization criterion score (0-1)
	ScoreOrganization float64 `parquet:"score_organization,snappy"`

	// Archived indicates whether the repository was archived at analysis time
	Archived bool `parquet:"archived,snappy"`
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRun structs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the AnalysisRun struct tags
	writer := parquet.NewGenericWriter[AnalysisRun](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteRepoScoresParquet writes a slice of RepoScore structs to a Parquet file.
func WriteRepoScoresParquet(data []RepoScore, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the RepoScore struct tags
	writer := parquet.NewGenericWriter[RepoScore](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertAnalysisRunRecords converts schema.AnalysisRunRecord to AnalysisRun for Parquet export.
func ConvertAnalysisRunRecords(records []schema.AnalysisRunRecord) []AnalysisRun {
	result := make([]AnalysisRun, len(records))
	for i, record := range records {
		result[i] = AnalysisRun{
			AnalysisID:         record.AnalysisID,
			Username:           record.Username,
			StartTime:          record.StartTime,
			EndTime:            record.EndTime,
			RunDurationMs:      record.RunDurationMs,
			TotalReposAnalyzed: record.TotalReposAnalyzed,
			AverageScore:       record.AverageScore,
			ConfigParams:       record.ConfigParams,
		}
	}
	return result
}

// ConvertRepoScoreRecords converts schema.RepoScoreRecord to RepoScore for Parquet export.
func ConvertRepoScoreRecords(records []schema.RepoScoreRecord) []RepoScore {
	result := make([]RepoScore, len(records))
	for i, record := range records {
		result[i] = RepoScore{
			AnalysisID:         record.AnalysisID,
			RepoName:           record.RepoName,
			AnalysisTime:       record.AnalysisTime,
			PrimaryLanguage:    record.PrimaryLanguage,
			Stars:              record.Stars,
			Overall:            record.Overall,
			Tier:               record.Tier,
			ScoreDocumentation: record.ScoreDocumentation,
			ScoreTesting:       record.ScoreTesting,
			ScoreActivity:      record.ScoreActivity,
			ScorePopularity:    record.ScorePopularity,
			ScoreOrganization:  record.ScoreOrganization,
			Archived:           record.Archived,
		}
	}
	return result
}
