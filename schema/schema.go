// Package schema has configs, models and global variables for all parts of gitfolio.
package schema

import "time"

// RepositorySnapshot is the immutable, point-in-time record for a single
// repository, assembled by the fetch layer from the GitHub API. The engine
// never mutates it; every derived artifact is computed fresh from this input.
type RepositorySnapshot struct {
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	PrimaryLanguage string           `json:"primary_language"`
	Languages       map[string]int64 `json:"languages"` // language -> byte count
	SizeKB          int64            `json:"size_kb"`
	Stars           int              `json:"stars"`
	Forks           int              `json:"forks"`
	OpenIssues      int              `json:"open_issues"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	PushedAt        time.Time        `json:"pushed_at"`
	HasReadme       bool             `json:"has_readme"`
	HasLicense      bool             `json:"has_license"`
	HasTests        bool             `json:"has_tests"`
	HasCI           bool             `json:"has_ci"`
	Topics          []string         `json:"topics"`
	Archived        bool             `json:"archived"`
}

// UserAccount holds basic account metadata for the analyzed user.
type UserAccount struct {
	Login       string    `json:"login"`
	Name        string    `json:"name"`
	JoinedAt    time.Time `json:"joined_at"`
	Followers   int       `json:"followers"`
	PublicRepos int       `json:"public_repos"`
}

// SnapshotSet bundles a user's account metadata with the complete,
// deduplicated set of repository snapshots fetched for that user.
// This is the unit of work handed to the engine and the unit of
// storage for the snapshot cache.
type SnapshotSet struct {
	User      UserAccount          `json:"user"`
	Repos     []RepositorySnapshot `json:"repos"`
	FetchedAt time.Time            `json:"fetched_at"`
}
