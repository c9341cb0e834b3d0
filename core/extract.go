package core

import (
	"math"
	"strings"
	"time"

	"github.com/zarmaks/gitfolio/schema"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Extract computes the normalized metric set for a single repository
// snapshot. It is pure and total: every snapshot, however sparse, yields a
// metric set with all scores in [0,1].
func Extract(snap *schema.RepositorySnapshot, now time.Time) schema.MetricSet {
	days := daysSincePush(snap.PushedAt, now)
	bucket := recencyBucket(days, snap.PushedAt)

	var m schema.MetricSet
	m.Recency = bucket
	m.DaysSincePush = days

	// --- Documentation [0,1] ---
	if snap.HasReadme {
		m.DocumentationScore += schema.DocWeightReadme
	}
	if strings.TrimSpace(snap.Description) != "" {
		m.DocumentationScore += schema.DocWeightDescription
	}
	if snap.HasLicense {
		m.DocumentationScore += schema.DocWeightLicense
	}

	// --- Testing [0,1] ---
	if snap.HasTests {
		m.TestingScore += schema.TestWeightTests
	}
	if snap.HasCI {
		m.TestingScore += schema.TestWeightCI
	}

	// --- Activity [0,1] ---
	switch bucket {
	case schema.ActiveBucket:
		m.ActivityScore = schema.ActivityScoreActive
	case schema.StaleBucket:
		m.ActivityScore = schema.ActivityScoreStale
	default:
		m.ActivityScore = schema.ActivityScoreDormant
	}

	// --- Popularity [0,1], log-scaled so a handful of stars still registers ---
	engagement := float64(snap.Stars + snap.Forks)
	if engagement < 0 {
		engagement = 0
	}
	m.PopularityScore = clamp01(math.Log1p(engagement) / math.Log1p(schema.MaxPopularity))

	// --- Organization [0,1] ---
	m.LanguageCount = len(snap.Languages)
	if m.LanguageCount == 0 && snap.PrimaryLanguage != "" {
		m.LanguageCount = 1
	}
	nLangs := clamp01(float64(m.LanguageCount) / schema.MaxLanguagesPerRepo)
	nTopics := clamp01(float64(len(snap.Topics)) / schema.MaxTopicsPerRepo)
	m.OrganizationScore = schema.OrgWeightDiversity*nLangs + schema.OrgWeightTopics*nTopics

	return m
}

// daysSincePush returns whole days between the last push and now, floored
// at zero. A zero push time reports the stale window plus one so the
// repository lands in the dormant bucket.
func daysSincePush(pushedAt, now time.Time) int {
	if pushedAt.IsZero() {
		return schema.StaleWindowDays + 1
	}
	days := int(now.Sub(pushedAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func recencyBucket(days int, pushedAt time.Time) schema.RecencyBucket {
	switch {
	case pushedAt.IsZero():
		return schema.DormantBucket
	case days <= schema.ActiveWindowDays:
		return schema.ActiveBucket
	case days <= schema.StaleWindowDays:
		return schema.StaleBucket
	default:
		return schema.DormantBucket
	}
}
