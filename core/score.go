package core

import (
	"math"

	"github.com/zarmaks/gitfolio/schema"
)

// criterionValue returns the normalized metric behind each scoring criterion.
func criterionValue(m *schema.MetricSet, key schema.CriterionKey) float64 {
	switch key {
	case schema.CriterionDocumentation:
		return m.DocumentationScore
	case schema.CriterionTesting:
		return m.TestingScore
	case schema.CriterionActivity:
		return m.ActivityScore
	case schema.CriterionPopularity:
		return m.PopularityScore
	case schema.CriterionOrganization:
		return m.OrganizationScore
	default:
		return 0
	}
}

// Score computes the weighted 0-100 quality score for one repository.
// Weights must cover every criterion and sum to 1.0; the config layer
// enforces this at load time but the invariant is re-checked here since
// callers may construct weights directly. Archived repositories are scored
// normally and flagged so downstream suggestion logic can skip them.
func Score(m *schema.MetricSet, archived bool, weights map[schema.CriterionKey]float64) (schema.QualityScore, error) {
	sum := 0.0
	for _, key := range schema.CriterionOrder {
		w, ok := weights[key]
		if !ok {
			return schema.QualityScore{}, &InvalidInputError{Reason: "missing weight for criterion " + string(key)}
		}
		if w < 0 {
			return schema.QualityScore{}, &InvalidInputError{Reason: "negative weight for criterion " + string(key)}
		}
		sum += w
	}
	if sum < 0.999 || sum > 1.001 {
		return schema.QualityScore{}, &InvalidInputError{Reason: "criterion weights must sum to 1.0"}
	}

	breakdown := make([]schema.CriterionContribution, 0, len(schema.CriterionOrder))
	raw := 0.0
	for _, key := range schema.CriterionOrder {
		w := weights[key]
		v := criterionValue(m, key)
		weighted := w * v
		raw += weighted
		breakdown = append(breakdown, schema.CriterionContribution{
			Criterion: key,
			Weight:    w,
			Value:     v,
			Weighted:  weighted * 100.0,
		})
	}

	overall := int(math.Round(raw * 100.0))
	if overall < 0 {
		overall = 0
	}
	if overall > 100 {
		overall = 100
	}

	return schema.QualityScore{
		Overall:   overall,
		Breakdown: breakdown,
		Tier:      schema.TierFor(overall),
		Archived:  archived,
	}, nil
}
