package core

import (
	"fmt"
	"sort"

	"github.com/zarmaks/gitfolio/schema"
)

// repoRule is one row of the per-repository suggestion rule table. A rule
// either fires with a severity and message or stays silent.
type repoRule struct {
	category schema.SuggestionCategory
	evaluate func(snap *schema.RepositorySnapshot, m *schema.MetricSet, score *schema.QualityScore) (schema.Severity, string, bool)
}

// portfolioRule is one row of the portfolio-scope suggestion rule table.
type portfolioRule struct {
	category schema.SuggestionCategory
	evaluate func(profile *schema.PortfolioProfile) (schema.Severity, string, bool)
}

// Per-repository rules. Order matters: the first rule to fire for a
// (category, target) pair wins and later ones are dropped by deduplication.
var repoRules = []repoRule{
	{
		category: schema.DocumentationCategory,
		evaluate: func(snap *schema.RepositorySnapshot, _ *schema.MetricSet, score *schema.QualityScore) (schema.Severity, string, bool) {
			if snap.HasReadme {
				return "", "", false
			}
			severity := schema.LowSeverity
			if score.Overall < schema.GoodThreshold {
				severity = schema.HighSeverity
			}
			return severity, fmt.Sprintf("Add a README to %s explaining what it does and how to run it", snap.Name), true
		},
	},
	{
		category: schema.DocumentationCategory,
		evaluate: func(snap *schema.RepositorySnapshot, _ *schema.MetricSet, _ *schema.QualityScore) (schema.Severity, string, bool) {
			if snap.Description != "" {
				return "", "", false
			}
			return schema.LowSeverity, fmt.Sprintf("Add a one-line description to %s so visitors know what it is", snap.Name), true
		},
	},
	{
		category: schema.TestingCategory,
		evaluate: func(snap *schema.RepositorySnapshot, m *schema.MetricSet, _ *schema.QualityScore) (schema.Severity, string, bool) {
			if snap.HasTests {
				return "", "", false
			}
			severity := schema.MediumSeverity
			if m.Recency == schema.ActiveBucket {
				severity = schema.HighSeverity
			}
			return severity, fmt.Sprintf("Add a test suite to %s", snap.Name), true
		},
	},
	{
		category: schema.TestingCategory,
		evaluate: func(snap *schema.RepositorySnapshot, _ *schema.MetricSet, _ *schema.QualityScore) (schema.Severity, string, bool) {
			if !snap.HasTests || snap.HasCI {
				return "", "", false
			}
			return schema.LowSeverity, fmt.Sprintf("Run the tests of %s in CI so they stay green", snap.Name), true
		},
	},
	{
		category: schema.MaintenanceCategory,
		evaluate: func(snap *schema.RepositorySnapshot, m *schema.MetricSet, _ *schema.QualityScore) (schema.Severity, string, bool) {
			if m.Recency != schema.DormantBucket {
				return "", "", false
			}
			return schema.MediumSeverity, fmt.Sprintf("Revive or archive %s; it has not been pushed in over a year", snap.Name), true
		},
	},
	{
		category: schema.VisibilityCategory,
		evaluate: func(snap *schema.RepositorySnapshot, _ *schema.MetricSet, _ *schema.QualityScore) (schema.Severity, string, bool) {
			if len(snap.Topics) > 0 {
				return "", "", false
			}
			return schema.LowSeverity, fmt.Sprintf("Add topics to %s so it shows up in GitHub search", snap.Name), true
		},
	},
}

// Portfolio-scope rules share the single "portfolio" target, so at most one
// diversification suggestion survives deduplication.
var portfolioRules = []portfolioRule{
	{
		category: schema.DiversificationCategory,
		evaluate: func(profile *schema.PortfolioProfile) (schema.Severity, string, bool) {
			lang := profile.DominantLanguage()
			if lang == "" {
				return "", "", false
			}
			return schema.MediumSeverity, fmt.Sprintf("Over %s of your code is %s; add a project in another language", schema.FormatPercent(schema.DominanceThreshold), lang), true
		},
	},
	{
		category: schema.DiversificationCategory,
		evaluate: func(profile *schema.PortfolioProfile) (schema.Severity, string, bool) {
			if profile.RepositoryCount < 3 || len(profile.LanguageDistribution) >= 3 {
				return "", "", false
			}
			return schema.LowSeverity, "Your portfolio covers fewer than three languages; broaden it with a new stack", true
		},
	},
}

// GenerateSuggestions runs the rule tables over a scored portfolio and
// returns ranked, de-duplicated suggestions. Archived repositories never
// produce suggestions. The result is sorted most urgent first: severity,
// then worst-scoring target, then target name.
func GenerateSuggestions(profile *schema.PortfolioProfile, snaps []schema.RepositorySnapshot, metrics []schema.MetricSet, scores []schema.QualityScore) []schema.Suggestion {
	suggestions := []schema.Suggestion{}
	seen := make(map[string]struct{})
	targetScore := make(map[string]float64)

	add := func(category schema.SuggestionCategory, severity schema.Severity, target, message string) {
		id := string(category) + ":" + target
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		suggestions = append(suggestions, schema.Suggestion{
			ID:       id,
			Category: category,
			Severity: severity,
			Target:   target,
			Message:  message,
		})
	}

	for i := range snaps {
		snap := &snaps[i]
		if snap.Archived {
			continue
		}
		targetScore[snap.Name] = float64(scores[i].Overall)
		for _, rule := range repoRules {
			if severity, message, ok := rule.evaluate(snap, &metrics[i], &scores[i]); ok {
				add(rule.category, severity, snap.Name, message)
			}
		}
	}

	targetScore[schema.PortfolioTarget] = profile.AverageScore
	for _, rule := range portfolioRules {
		if severity, message, ok := rule.evaluate(profile); ok {
			add(rule.category, severity, schema.PortfolioTarget, message)
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		ri, rj := schema.SeverityRank[suggestions[i].Severity], schema.SeverityRank[suggestions[j].Severity]
		if ri != rj {
			return ri < rj
		}
		si, sj := targetScore[suggestions[i].Target], targetScore[suggestions[j].Target]
		if si != sj {
			return si < sj
		}
		return suggestions[i].Target < suggestions[j].Target
	})

	return suggestions
}
