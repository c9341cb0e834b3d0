package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/zarmaks/gitfolio/schema"
)

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func TestExtractRecencyBuckets(t *testing.T) {
	tests := []struct {
		name       string
		pushedAt   time.Time
		wantBucket schema.RecencyBucket
		wantScore  float64
	}{
		{"pushed yesterday", testNow.Add(-24 * time.Hour), schema.ActiveBucket, schema.ActivityScoreActive},
		{"pushed at active boundary", testNow.AddDate(0, 0, -90), schema.ActiveBucket, schema.ActivityScoreActive},
		{"pushed six months ago", testNow.AddDate(0, -6, 0), schema.StaleBucket, schema.ActivityScoreStale},
		{"pushed two years ago", testNow.AddDate(-2, 0, 0), schema.DormantBucket, schema.ActivityScoreDormant},
		{"never pushed", time.Time{}, schema.DormantBucket, schema.ActivityScoreDormant},
		{"pushed in the future", testNow.Add(time.Hour), schema.ActiveBucket, schema.ActivityScoreActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := schema.RepositorySnapshot{Name: "r", PushedAt: tt.pushedAt}
			m := Extract(&snap, testNow)
			assert.Equal(t, tt.wantBucket, m.Recency)
			assert.InDelta(t, tt.wantScore, m.ActivityScore, 1e-9)
			assert.GreaterOrEqual(t, m.DaysSincePush, 0)
		})
	}
}

func TestExtractDocumentationScore(t *testing.T) {
	tests := []struct {
		name string
		snap schema.RepositorySnapshot
		want float64
	}{
		{"nothing", schema.RepositorySnapshot{}, 0},
		{"readme only", schema.RepositorySnapshot{HasReadme: true}, schema.DocWeightReadme},
		{"description only", schema.RepositorySnapshot{Description: "a tool"}, schema.DocWeightDescription},
		{"blank description ignored", schema.RepositorySnapshot{Description: "   "}, 0},
		{"license only", schema.RepositorySnapshot{HasLicense: true}, schema.DocWeightLicense},
		{
			"everything",
			schema.RepositorySnapshot{HasReadme: true, Description: "a tool", HasLicense: true},
			1.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Extract(&tt.snap, testNow)
			assert.InDelta(t, tt.want, m.DocumentationScore, 1e-9)
		})
	}
}

func TestExtractTestingScore(t *testing.T) {
	assert.InDelta(t, 0.0, Extract(&schema.RepositorySnapshot{}, testNow).TestingScore, 1e-9)
	assert.InDelta(t, schema.TestWeightTests, Extract(&schema.RepositorySnapshot{HasTests: true}, testNow).TestingScore, 1e-9)
	assert.InDelta(t, schema.TestWeightCI, Extract(&schema.RepositorySnapshot{HasCI: true}, testNow).TestingScore, 1e-9)
	assert.InDelta(t, 1.0, Extract(&schema.RepositorySnapshot{HasTests: true, HasCI: true}, testNow).TestingScore, 1e-9)
}

func TestExtractPopularityScore(t *testing.T) {
	none := Extract(&schema.RepositorySnapshot{}, testNow)
	assert.InDelta(t, 0.0, none.PopularityScore, 1e-9)

	few := Extract(&schema.RepositorySnapshot{Stars: 5}, testNow)
	assert.Greater(t, few.PopularityScore, 0.2, "log scaling keeps a handful of stars visible")

	many := Extract(&schema.RepositorySnapshot{Stars: 900, Forks: 200}, testNow)
	assert.InDelta(t, 1.0, many.PopularityScore, 1e-9, "saturates at the popularity ceiling")

	assert.Greater(t, many.PopularityScore, few.PopularityScore)
}

func TestExtractOrganizationScore(t *testing.T) {
	bare := Extract(&schema.RepositorySnapshot{}, testNow)
	assert.InDelta(t, 0.0, bare.OrganizationScore, 1e-9)
	assert.Equal(t, 0, bare.LanguageCount)

	// Primary language without a byte map still counts as one language.
	primaryOnly := Extract(&schema.RepositorySnapshot{PrimaryLanguage: "Go"}, testNow)
	assert.Equal(t, 1, primaryOnly.LanguageCount)

	rich := Extract(&schema.RepositorySnapshot{
		Languages: map[string]int64{"Go": 1, "Python": 1, "Shell": 1, "HCL": 1, "Make": 1, "Lua": 1},
		Topics:    []string{"a", "b", "c", "d", "e", "f"},
	}, testNow)
	assert.InDelta(t, 1.0, rich.OrganizationScore, 1e-9, "both sub-signals saturate")
}

func TestExtractScoresStayInRange(t *testing.T) {
	snaps := []schema.RepositorySnapshot{
		{},
		{Stars: 1 << 30, Forks: 1 << 30},
		{Languages: map[string]int64{"Go": 1}, Topics: make([]string, 100)},
		{PushedAt: testNow.AddDate(-50, 0, 0)},
	}
	for _, snap := range snaps {
		m := Extract(&snap, testNow)
		for _, v := range []float64{m.DocumentationScore, m.TestingScore, m.ActivityScore, m.PopularityScore, m.OrganizationScore} {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}
