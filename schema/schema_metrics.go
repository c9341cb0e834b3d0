package schema

// MetricSet holds the normalized facts extracted from one repository
// snapshot. All *Score fields are in [0,1]. A MetricSet is computed once per
// repository per call and never persisted.
type MetricSet struct {
	Recency            RecencyBucket `json:"recency"`
	DaysSincePush      int           `json:"days_since_push"`
	DocumentationScore float64       `json:"documentation_score"`
	TestingScore       float64       `json:"testing_score"`
	PopularityScore    float64       `json:"popularity_score"`
	ActivityScore      float64       `json:"activity_score"`
	OrganizationScore  float64       `json:"organization_score"`
	LanguageCount      int           `json:"language_count"`
}

// CriterionContribution is one labeled row of a quality score breakdown.
// Weighted = Weight * Value, scaled to the 0-100 range of the overall score.
type CriterionContribution struct {
	Criterion CriterionKey `json:"criterion"`
	Weight    float64      `json:"weight"`
	Value     float64      `json:"value"`
	Weighted  float64      `json:"weighted"`
}

// QualityScore is the scored view of one repository. Overall is
// round(100 * sum(weight_i * value_i)) and the breakdown rows follow
// CriterionOrder. Archived repositories are scored normally but flagged so
// the suggestion generator can suppress improvement noise for them.
type QualityScore struct {
	Overall   int                     `json:"overall"`
	Breakdown []CriterionContribution `json:"breakdown"`
	Tier      Tier                    `json:"tier"`
	Archived  bool                    `json:"archived"`
}

// Suggestion is one ranked, de-duplicated improvement recommendation.
// ID is the stable de-duplication key (category + target); the generator
// never emits two suggestions with the same ID in one output.
type Suggestion struct {
	ID       string             `json:"id"`
	Category SuggestionCategory `json:"category"`
	Severity Severity           `json:"severity"`
	Target   string             `json:"target"` // repository name or PortfolioTarget
	Message  string             `json:"message"`
}
