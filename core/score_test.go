package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zarmaks/gitfolio/schema"
)

func TestScorePerfectMetrics(t *testing.T) {
	m := schema.MetricSet{
		DocumentationScore: 1,
		TestingScore:       1,
		ActivityScore:      1,
		PopularityScore:    1,
		OrganizationScore:  1,
	}
	score, err := Score(&m, false, schema.GetDefaultWeights())
	require.NoError(t, err)

	assert.Equal(t, 100, score.Overall)
	assert.Equal(t, schema.ExcellentTier, score.Tier)
	assert.False(t, score.Archived)
}

func TestScoreZeroMetrics(t *testing.T) {
	m := schema.MetricSet{}
	score, err := Score(&m, false, schema.GetDefaultWeights())
	require.NoError(t, err)

	assert.Equal(t, 0, score.Overall)
	assert.Equal(t, schema.PoorTier, score.Tier)
}

func TestScoreBreakdownOrderAndSum(t *testing.T) {
	m := schema.MetricSet{
		DocumentationScore: 0.85,
		TestingScore:       0.7,
		ActivityScore:      1.0,
		PopularityScore:    0.3,
		OrganizationScore:  0.5,
	}
	weights := schema.GetDefaultWeights()
	score, err := Score(&m, false, weights)
	require.NoError(t, err)

	require.Len(t, score.Breakdown, len(schema.CriterionOrder))
	sum := 0.0
	for i, row := range score.Breakdown {
		assert.Equal(t, schema.CriterionOrder[i], row.Criterion)
		assert.InDelta(t, weights[row.Criterion], row.Weight, 1e-9)
		assert.InDelta(t, row.Weight*row.Value*100, row.Weighted, 1e-9)
		sum += row.Weighted
	}
	assert.InDelta(t, float64(score.Overall), sum, 0.5, "breakdown rows sum to the overall score")
}

func TestScoreArchivedFlagged(t *testing.T) {
	m := schema.MetricSet{DocumentationScore: 1}
	score, err := Score(&m, true, schema.GetDefaultWeights())
	require.NoError(t, err)
	assert.True(t, score.Archived)
}

func TestScoreRejectsBadWeights(t *testing.T) {
	m := schema.MetricSet{}

	tests := []struct {
		name    string
		weights map[schema.CriterionKey]float64
	}{
		{"nil weights", nil},
		{
			"missing criterion",
			map[schema.CriterionKey]float64{
				schema.CriterionDocumentation: 0.5,
				schema.CriterionTesting:       0.5,
			},
		},
		{
			"sum above one",
			map[schema.CriterionKey]float64{
				schema.CriterionDocumentation: 0.5,
				schema.CriterionTesting:       0.5,
				schema.CriterionActivity:      0.5,
				schema.CriterionPopularity:    0.25,
				schema.CriterionOrganization:  0.25,
			},
		},
		{
			"negative weight",
			map[schema.CriterionKey]float64{
				schema.CriterionDocumentation: 0.5,
				schema.CriterionTesting:       0.5,
				schema.CriterionActivity:      0.5,
				schema.CriterionPopularity:    -0.25,
				schema.CriterionOrganization:  -0.25,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Score(&m, false, tt.weights)
			require.Error(t, err)

			var invalidErr *InvalidInputError
			assert.ErrorAs(t, err, &invalidErr)
		})
	}
}

func BenchmarkScore(b *testing.B) {
	m := schema.MetricSet{
		DocumentationScore: 0.85,
		TestingScore:       0.7,
		ActivityScore:      1.0,
		PopularityScore:    0.3,
		OrganizationScore:  0.5,
	}
	weights := schema.GetDefaultWeights()

	for b.Loop() {
		_, _ = Score(&m, false, weights)
	}
}
