package schema

import "time"

// RepoScoreSummary is one scored repository row inside a portfolio report,
// compact enough for table output.
type RepoScoreSummary struct {
	Name            string        `json:"name"`
	PrimaryLanguage string        `json:"primary_language"`
	Stars           int           `json:"stars"`
	Recency         RecencyBucket `json:"recency"`
	Overall         int           `json:"overall"`
	Tier            Tier          `json:"tier"`
	Archived        bool          `json:"archived"`
}

// PortfolioReport is the full result of a portfolio analysis: the aggregate
// profile, per-repository score summaries ranked best first, and the ranked
// suggestion list.
type PortfolioReport struct {
	User         UserAccount        `json:"user"`
	Profile      PortfolioProfile   `json:"profile"`
	Repos        []RepoScoreSummary `json:"repos"`
	PopularRepos []RepoScoreSummary `json:"popular_repos"`
	Suggestions  []Suggestion       `json:"suggestions"`
	GeneratedAt  time.Time          `json:"generated_at"`
}

// RepositoryReport is the deep-dive result for a single repository.
type RepositoryReport struct {
	Snapshot    RepositorySnapshot `json:"snapshot"`
	Metrics     MetricSet          `json:"metrics"`
	Score       QualityScore       `json:"score"`
	Suggestions []Suggestion       `json:"suggestions"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// CheckReport is the result of gating a portfolio against a minimum average
// score, for CI-style pass/fail use.
type CheckReport struct {
	Username     string    `json:"username"`
	AverageScore float64   `json:"average_score"`
	Threshold    float64   `json:"threshold"`
	Passed       bool      `json:"passed"`
	RepoCount    int       `json:"repo_count"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// LearningPathReport is the result of matching a portfolio against a target
// role: the gap breakdown plus concrete next steps.
type LearningPathReport struct {
	Role        string     `json:"role"`
	Gaps        []SkillGap `json:"gaps"`
	TopGaps     []SkillGap `json:"top_gaps"`
	Projects    []string   `json:"projects"`
	NextProject string     `json:"next_project"` // first suggested project, "" when none
	GeneratedAt time.Time  `json:"generated_at"`
}
