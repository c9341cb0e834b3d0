package core

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/zarmaks/gitfolio/internal/contract"
	"github.com/zarmaks/gitfolio/schema"
)

// currentCacheVersion defines the version of the snapshot cache payload.
// Bump when schema.SnapshotSet changes shape.
const currentCacheVersion = 1

// ResolveSnapshots returns the snapshot set for cfg.Username, from the
// snapshot cache when a fresh entry exists, otherwise from the fetcher.
// Cache failures degrade to a fetch; only fetch failures are fatal.
func ResolveSnapshots(ctx context.Context, cfg *contract.Config, fetcher contract.RepoFetcher, mgr contract.CacheManager) (*schema.SnapshotSet, error) {
	if cfg.Username == "" {
		return nil, &InvalidInputError{Reason: "username must not be empty"}
	}

	store := mgr.GetSnapshotStore()
	key := cacheKeyFor(cfg.Username)

	if store != nil && !cfg.Refresh {
		if set := checkCacheHit(store, key, cfg.CacheTTL); set != nil {
			return set, nil
		}
	}

	set, err := fetcher.FetchSnapshots(ctx, cfg.Username)
	if err != nil {
		return nil, err
	}

	if store != nil {
		if data, err := json.Marshal(set); err == nil {
			if err := store.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
				contract.LogWarn("Snapshot cache write failed", err)
			}
		}
	}

	return set, nil
}

// checkCacheHit attempts to retrieve and validate a cached snapshot set.
func checkCacheHit(store contract.SnapshotStore, key string, ttl time.Duration) *schema.SnapshotSet {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	if version == currentCacheVersion {
		entryTimestamp := time.Unix(ts, 0)
		if time.Since(entryTimestamp) <= ttl {
			var set schema.SnapshotSet
			if err := json.Unmarshal(data, &set); err == nil {
				return &set // Cache hit
			}
		}
	}

	return nil // Cache miss (stale or version mismatch)
}

// cacheKeyFor normalizes a username into a cache key. GitHub usernames are
// case-insensitive.
func cacheKeyFor(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// RunPortfolioAnalysis resolves snapshots and runs the full portfolio
// analysis, recording the run and per-repository scores in the history
// store when one is configured. Tracking failures are warnings, never
// analysis failures.
func RunPortfolioAnalysis(ctx context.Context, cfg *contract.Config, fetcher contract.RepoFetcher, mgr contract.CacheManager) (*schema.PortfolioReport, error) {
	set, err := ResolveSnapshots(ctx, cfg, fetcher, mgr)
	if err != nil {
		return nil, err
	}

	// --- 0. Begin Analysis Tracking (if configured) ---
	var analysisID int64
	startTime := time.Now()
	historyStore := mgr.GetHistoryStore()
	if historyStore != nil {
		configParams := map[string]any{
			"username":     cfg.Username,
			"result_limit": cfg.ResultLimit,
			"refresh":      cfg.Refresh,
		}
		analysisID, err = historyStore.BeginAnalysis(cfg.Username, startTime, configParams)
		if err != nil {
			contract.LogWarn("Analysis tracking initialization failed", err)
			analysisID = 0
		}
	}

	// --- 1. Engine Run ---
	engine := NewEngine(cfg.Weights, cfg.Catalog, WithResultLimit(cfg.ResultLimit), WithTopGaps(cfg.TopGaps))
	report, err := engine.AnalyzePortfolio(set)
	if err != nil {
		return nil, err
	}

	// --- 2. Record Per-Repository Scores ---
	if historyStore != nil && analysisID > 0 {
		recordRepoScores(historyStore, analysisID, set, engine)

		if err := historyStore.EndAnalysis(analysisID, time.Now(), len(set.Repos), report.Profile.AverageScore); err != nil {
			contract.LogWarn("Failed to finalize analysis tracking", err)
		}
	}

	return report, nil
}

// recordRepoScores stores one score record per repository for the run.
func recordRepoScores(store contract.HistoryStore, analysisID int64, set *schema.SnapshotSet, engine *Engine) {
	now := time.Now()
	metrics, scores, err := engine.evaluateAll(set.Repos)
	if err != nil {
		contract.LogWarn("Analysis tracking skipped", err)
		return
	}

	for i := range set.Repos {
		record := schema.RepoScoreRecord{
			AnalysisID:         analysisID,
			RepoName:           set.Repos[i].Name,
			AnalysisTime:       now,
			PrimaryLanguage:    set.Repos[i].PrimaryLanguage,
			Stars:              int32(set.Repos[i].Stars),
			Overall:            int32(scores[i].Overall),
			Tier:               string(scores[i].Tier),
			ScoreDocumentation: metrics[i].DocumentationScore,
			ScoreTesting:       metrics[i].TestingScore,
			ScoreActivity:      metrics[i].ActivityScore,
			ScorePopularity:    metrics[i].PopularityScore,
			ScoreOrganization:  metrics[i].OrganizationScore,
			Archived:           set.Repos[i].Archived,
		}
		if err := store.RecordRepoScore(analysisID, record); err != nil {
			contract.LogWarn("Analysis tracking failed for "+record.RepoName, err)
		}
	}
}
