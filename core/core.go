// Package core has the engine logic for metric extraction, scoring,
// aggregation, suggestions, and role gap matching.
package core

import (
	"time"

	"github.com/zarmaks/gitfolio/schema"
)

// Engine bundles the validated scoring weights and role catalog behind the
// three analysis entry points. It performs no I/O; snapshot sets come from
// the caller.
type Engine struct {
	weights map[schema.CriterionKey]float64
	catalog []schema.RoleProfile
	topGaps int
	limit   int

	// now is swappable for deterministic tests.
	now func() time.Time
}

// EngineOption customizes an Engine.
type EngineOption func(*Engine)

// WithClock overrides the engine's time source.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// WithResultLimit caps ranked repository lists in portfolio reports.
func WithResultLimit(limit int) EngineOption {
	return func(e *Engine) { e.limit = limit }
}

// WithTopGaps caps the TopGaps list in learning path reports.
func WithTopGaps(n int) EngineOption {
	return func(e *Engine) { e.topGaps = n }
}

// NewEngine builds an engine from validated weights and a validated catalog.
func NewEngine(weights map[schema.CriterionKey]float64, catalog []schema.RoleProfile, opts ...EngineOption) *Engine {
	e := &Engine{
		weights: weights,
		catalog: catalog,
		topGaps: 3,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// evaluateAll extracts and scores every snapshot in the set.
func (e *Engine) evaluateAll(snaps []schema.RepositorySnapshot) ([]schema.MetricSet, []schema.QualityScore, error) {
	now := e.now()
	metrics := make([]schema.MetricSet, len(snaps))
	scores := make([]schema.QualityScore, len(snaps))
	for i := range snaps {
		metrics[i] = Extract(&snaps[i], now)
		score, err := Score(&metrics[i], snaps[i].Archived, e.weights)
		if err != nil {
			return nil, nil, err
		}
		scores[i] = score
	}
	return metrics, scores, nil
}

// AnalyzePortfolio produces the full portfolio report for a snapshot set.
// An empty snapshot set is valid and yields a zero profile.
func (e *Engine) AnalyzePortfolio(set *schema.SnapshotSet) (*schema.PortfolioReport, error) {
	metrics, scores, err := e.evaluateAll(set.Repos)
	if err != nil {
		return nil, err
	}

	profile, err := Aggregate(set.Repos, metrics, scores)
	if err != nil {
		return nil, err
	}

	summaries := summarizeRepos(set.Repos, metrics, scores)
	return &schema.PortfolioReport{
		User:         set.User,
		Profile:      profile,
		Repos:        rankByScore(summaries, e.limit),
		PopularRepos: rankByStars(summaries, 5),
		Suggestions:  GenerateSuggestions(&profile, set.Repos, metrics, scores),
		GeneratedAt:  e.now(),
	}, nil
}

// AnalyzeRepository produces the deep-dive report for one repository in the
// set, matched by exact name. A missing repository is a NotFoundError.
func (e *Engine) AnalyzeRepository(set *schema.SnapshotSet, repoName string) (*schema.RepositoryReport, error) {
	idx := -1
	for i := range set.Repos {
		if set.Repos[i].Name == repoName {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &NotFoundError{Kind: "repository", Name: repoName}
	}

	snap := set.Repos[idx]
	metric := Extract(&snap, e.now())
	score, err := Score(&metric, snap.Archived, e.weights)
	if err != nil {
		return nil, err
	}

	// Run the repo rules against just this repository. Portfolio-scope
	// rules need the whole set and are out of place in a single-repo view.
	profile, err := Aggregate([]schema.RepositorySnapshot{snap}, []schema.MetricSet{metric}, []schema.QualityScore{score})
	if err != nil {
		return nil, err
	}
	suggestions := []schema.Suggestion{}
	for _, s := range GenerateSuggestions(&profile, []schema.RepositorySnapshot{snap}, []schema.MetricSet{metric}, []schema.QualityScore{score}) {
		if s.Target == snap.Name {
			suggestions = append(suggestions, s)
		}
	}

	return &schema.RepositoryReport{
		Snapshot:    snap,
		Metrics:     metric,
		Score:       score,
		Suggestions: suggestions,
		GeneratedAt: e.now(),
	}, nil
}

// SuggestLearningPath matches the portfolio against a target role and
// returns the gap breakdown with concrete next steps.
func (e *Engine) SuggestLearningPath(set *schema.SnapshotSet, roleName string) (*schema.LearningPathReport, error) {
	metrics, scores, err := e.evaluateAll(set.Repos)
	if err != nil {
		return nil, err
	}

	profile, err := Aggregate(set.Repos, metrics, scores)
	if err != nil {
		return nil, err
	}

	report, err := MatchRole(&profile, roleName, e.catalog)
	if err != nil {
		return nil, err
	}

	role, err := lookupRole(roleName, e.catalog)
	if err != nil {
		return nil, err
	}

	projects := make([]string, len(role.Projects))
	copy(projects, role.Projects)
	nextProject := ""
	if len(projects) > 0 {
		nextProject = projects[0]
	}

	return &schema.LearningPathReport{
		Role:        report.Role,
		Gaps:        report.Gaps,
		TopGaps:     report.TopGaps(e.topGaps),
		Projects:    projects,
		NextProject: nextProject,
		GeneratedAt: e.now(),
	}, nil
}
