package core

import (
	"sort"
	"strings"

	"github.com/zarmaks/gitfolio/schema"
)

// Project type labels used in the portfolio profile.
const (
	ProjectTypeML      = "ml"
	ProjectTypeWeb     = "web"
	ProjectTypeData    = "data"
	ProjectTypeLibrary = "library"
	ProjectTypeTool    = "tool"
	ProjectTypeOther   = "other"
)

// Aggregate folds per-repository snapshots, metrics, and scores into one
// portfolio profile. The three slices must be index-aligned; a length
// mismatch is an InvalidInputError. An empty portfolio yields a zero profile
// with non-nil maps.
func Aggregate(snaps []schema.RepositorySnapshot, metrics []schema.MetricSet, scores []schema.QualityScore) (schema.PortfolioProfile, error) {
	profile := schema.PortfolioProfile{
		LanguageDistribution: make(map[string]float64),
		ActivityBuckets:      make(map[schema.RecencyBucket]int),
		ProjectTypeCounts:    make(map[string]int),
		TopicSet:             []string{},
		TopicCounts:          make(map[string]int),
	}

	if len(snaps) != len(metrics) || len(snaps) != len(scores) {
		return profile, &InvalidInputError{Reason: "snapshots, metrics, and scores must be the same length"}
	}
	if len(snaps) == 0 {
		return profile, nil
	}

	langBytes := make(map[string]int64)
	var totalBytes int64
	var scoreSum, ciCount, testsCount int

	for i := range snaps {
		snap := &snaps[i]

		for lang, bytes := range snap.Languages {
			if bytes > 0 {
				langBytes[lang] += bytes
				totalBytes += bytes
			}
		}

		profile.ActivityBuckets[metrics[i].Recency]++
		profile.ProjectTypeCounts[InferProjectType(snap)]++
		profile.TotalStars += snap.Stars
		scoreSum += scores[i].Overall

		if snap.HasCI {
			ciCount++
		}
		if snap.HasTests {
			testsCount++
		}

		seen := make(map[string]struct{}, len(snap.Topics))
		for _, topic := range snap.Topics {
			normalized := schema.NormalizeTopic(topic)
			if normalized == "" {
				continue
			}
			if _, dup := seen[normalized]; dup {
				continue
			}
			seen[normalized] = struct{}{}
			profile.TopicCounts[normalized]++
		}
	}

	if totalBytes > 0 {
		for lang, bytes := range langBytes {
			profile.LanguageDistribution[lang] = float64(bytes) / float64(totalBytes)
		}
	}

	profile.TopicSet = make([]string, 0, len(profile.TopicCounts))
	for topic := range profile.TopicCounts {
		profile.TopicSet = append(profile.TopicSet, topic)
	}
	sort.Strings(profile.TopicSet)

	n := float64(len(snaps))
	profile.RepositoryCount = len(snaps)
	profile.AverageScore = float64(scoreSum) / n
	profile.CIFraction = float64(ciCount) / n
	profile.TestsFraction = float64(testsCount) / n

	return profile, nil
}

// Topic and language signals for project type inference. Topic signals win
// over language signals, and earlier entries win over later ones.
var projectTypeTopicSignals = []struct {
	projectType string
	topics      []string
}{
	{ProjectTypeML, []string{"machine-learning", "ml", "deep-learning", "ai", "nlp", "llm", "data-science", "neural-network", "computer-vision"}},
	{ProjectTypeData, []string{"data-engineering", "etl", "analytics", "data-pipeline", "sql", "warehouse"}},
	{ProjectTypeWeb, []string{"web", "webapp", "website", "frontend", "react", "vue", "api", "rest-api", "backend"}},
	{ProjectTypeLibrary, []string{"library", "sdk", "package", "framework"}},
	{ProjectTypeTool, []string{"cli", "tool", "automation", "devops", "utility"}},
}

var projectTypeLanguageSignals = map[string]string{
	"jupyter notebook": ProjectTypeML,
	"html":             ProjectTypeWeb,
	"css":              ProjectTypeWeb,
	"javascript":       ProjectTypeWeb,
	"typescript":       ProjectTypeWeb,
	"shell":            ProjectTypeTool,
	"dockerfile":       ProjectTypeTool,
}

// InferProjectType classifies a repository as ml, web, data, library, tool,
// or other using topic and language signals.
func InferProjectType(snap *schema.RepositorySnapshot) string {
	topics := make(map[string]struct{}, len(snap.Topics))
	for _, topic := range snap.Topics {
		topics[schema.NormalizeTopic(topic)] = struct{}{}
	}
	for _, signal := range projectTypeTopicSignals {
		for _, topic := range signal.topics {
			if _, ok := topics[topic]; ok {
				return signal.projectType
			}
		}
	}

	if projectType, ok := projectTypeLanguageSignals[strings.ToLower(snap.PrimaryLanguage)]; ok {
		return projectType
	}

	name := strings.ToLower(snap.Name)
	switch {
	case strings.Contains(name, "api") || strings.Contains(name, "server"):
		return ProjectTypeWeb
	case strings.Contains(name, "cli") || strings.Contains(name, "tool"):
		return ProjectTypeTool
	}

	return ProjectTypeOther
}
