package core

import (
	"sort"

	"github.com/zarmaks/gitfolio/schema"
)

// summarizeRepos builds compact score summaries from aligned snapshots,
// metrics, and scores.
func summarizeRepos(snaps []schema.RepositorySnapshot, metrics []schema.MetricSet, scores []schema.QualityScore) []schema.RepoScoreSummary {
	out := make([]schema.RepoScoreSummary, 0, len(snaps))
	for i := range snaps {
		out = append(out, schema.RepoScoreSummary{
			Name:            snaps[i].Name,
			PrimaryLanguage: snaps[i].PrimaryLanguage,
			Stars:           snaps[i].Stars,
			Recency:         metrics[i].Recency,
			Overall:         scores[i].Overall,
			Tier:            scores[i].Tier,
			Archived:        snaps[i].Archived,
		})
	}
	return out
}

// rankByScore sorts summaries best first, ties broken alphabetically, and
// truncates to limit. A limit <= 0 means no cap.
func rankByScore(summaries []schema.RepoScoreSummary, limit int) []schema.RepoScoreSummary {
	ranked := make([]schema.RepoScoreSummary, len(summaries))
	copy(ranked, summaries)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Overall != ranked[j].Overall {
			return ranked[i].Overall > ranked[j].Overall
		}
		return ranked[i].Name < ranked[j].Name
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// rankByStars sorts summaries by stars descending, ties broken
// alphabetically, and keeps only starred repositories up to limit.
func rankByStars(summaries []schema.RepoScoreSummary, limit int) []schema.RepoScoreSummary {
	starred := make([]schema.RepoScoreSummary, 0, len(summaries))
	for _, s := range summaries {
		if s.Stars > 0 {
			starred = append(starred, s)
		}
	}
	sort.Slice(starred, func(i, j int) bool {
		if starred[i].Stars != starred[j].Stars {
			return starred[i].Stars > starred[j].Stars
		}
		return starred[i].Name < starred[j].Name
	})
	if limit > 0 && len(starred) > limit {
		starred = starred[:limit]
	}
	return starred
}
