package iocache

import (
	"errors"
	"fmt"

	"github.com/zarmaks/gitfolio/internal/parquet"
)

// ExecuteHistoryExport performs the actual export of analysis history to Parquet files.
func ExecuteHistoryExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the history store
	store := Manager.GetHistoryStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no analysis history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total analysis runs: %d\n", status.TotalRuns)
	fmt.Printf("Total repo score records: %d\n", status.TableSizes[repoScoresTable])

	// Retrieve all analysis runs
	analysisRuns, err := store.GetAllAnalysisRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve analysis runs: %w", err)
	}

	// Retrieve all repository scores
	repoScores, err := store.GetAllRepoScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve repo scores: %w", err)
	}

	// Convert to Parquet format
	parquetAnalysisRuns := parquet.ConvertAnalysisRunRecords(analysisRuns)
	parquetRepoScores := parquet.ConvertRepoScoreRecords(repoScores)

	// Write analysis runs to Parquet
	analysisRunsFile := outputFile + ".analysis_runs.parquet"
	if err := parquet.WriteAnalysisRunsParquet(parquetAnalysisRuns, analysisRunsFile); err != nil {
		return fmt.Errorf("failed to write analysis runs: %w", err)
	}
	fmt.Printf("Exported %d analysis runs to: %s\n", len(parquetAnalysisRuns), analysisRunsFile)

	// Write repository scores to Parquet
	repoScoresFile := outputFile + ".repo_scores.parquet"
	if err := parquet.WriteRepoScoresParquet(parquetRepoScores, repoScoresFile); err != nil {
		return fmt.Errorf("failed to write repo scores: %w", err)
	}
	fmt.Printf("Exported %d repo score records to: %s\n", len(parquetRepoScores), repoScoresFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
