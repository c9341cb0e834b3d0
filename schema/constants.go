package schema

// Custom string types for type safety.
type (
	// CriterionKey represents keys used in quality score breakdowns.
	CriterionKey string

	// RecencyBucket represents how recently a repository was pushed to.
	RecencyBucket string

	// Tier represents the categorical quality label for a score.
	Tier string

	// SuggestionCategory represents the concern a suggestion addresses.
	SuggestionCategory string

	// Severity represents how urgent a suggestion is.
	Severity string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for persistence.
	DatabaseBackend string
)

// Criterion keys used in the scoring logic.
const (
	CriterionDocumentation CriterionKey = "documentation"
	CriterionTesting       CriterionKey = "testing"
	CriterionActivity      CriterionKey = "activity"
	CriterionPopularity    CriterionKey = "popularity"
	CriterionOrganization  CriterionKey = "organization"
)

// CriterionOrder fixes the display order of criteria in breakdowns.
var CriterionOrder = []CriterionKey{
	CriterionDocumentation,
	CriterionTesting,
	CriterionActivity,
	CriterionPopularity,
	CriterionOrganization,
}

// All recency buckets supported.
const (
	ActiveBucket  RecencyBucket = "active"
	StaleBucket   RecencyBucket = "stale"
	DormantBucket RecencyBucket = "dormant"
)

// All quality tiers supported.
const (
	ExcellentTier        Tier = "excellent"
	GoodTier             Tier = "good"
	NeedsImprovementTier Tier = "needs_improvement"
	PoorTier             Tier = "poor"
)

// All suggestion categories supported.
const (
	DocumentationCategory   SuggestionCategory = "documentation"
	TestingCategory         SuggestionCategory = "testing"
	DiversificationCategory SuggestionCategory = "diversification"
	MaintenanceCategory     SuggestionCategory = "maintenance"
	VisibilityCategory      SuggestionCategory = "visibility"
)

// All severities supported, from most to least urgent.
const (
	HighSeverity   Severity = "high"
	MediumSeverity Severity = "medium"
	LowSeverity    Severity = "low"
)

// SeverityRank orders severities for sorting (lower rank sorts first).
var SeverityRank = map[Severity]int{
	HighSeverity:   0,
	MediumSeverity: 1,
	LowSeverity:    2,
}

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// PortfolioTarget is the suggestion target used for portfolio-wide concerns,
// as opposed to a single repository name.
const PortfolioTarget = "portfolio"

// Recency thresholds, in days since last push.
const (
	ActiveWindowDays = 90  // pushed within this window counts as active
	StaleWindowDays  = 365 // pushed within this window counts as stale; beyond is dormant
)

// Activity scores per recency bucket.
const (
	ActivityScoreActive  = 1.0
	ActivityScoreStale   = 0.4
	ActivityScoreDormant = 0.1
)

// Documentation sub-signal weights. README presence carries the most signal;
// a description and a license round out the composite.
const (
	DocWeightReadme      = 0.6
	DocWeightDescription = 0.25
	DocWeightLicense     = 0.15
)

// Testing sub-signal weights.
const (
	TestWeightTests = 0.7
	TestWeightCI    = 0.3
)

// Organization sub-signal weights and saturation points.
const (
	OrgWeightDiversity = 0.5
	OrgWeightTopics    = 0.5
	MaxLanguagesPerRepo = 5.0 // languages beyond this saturate the diversity signal
	MaxTopicsPerRepo    = 5.0 // topics beyond this saturate the topics signal
)

// MaxPopularity is the stars+forks count beyond which popularity saturates.
// Popularity is log-scaled so a handful of stars still moves the needle.
const MaxPopularity = 1000.0

// DominanceThreshold is the fraction of total portfolio bytes above which a
// single language triggers the diversification suggestion.
const DominanceThreshold = 0.80

// Tier thresholds on the 0-100 overall score.
const (
	ExcellentThreshold        = 80
	GoodThreshold             = 60
	NeedsImprovementThreshold = 40
)

// GetDefaultWeights returns the default criterion weight map used by the
// repository scorer. The weights must sum to 1.0; this is enforced at
// configuration-load time, not per call.
func GetDefaultWeights() map[CriterionKey]float64 {
	return map[CriterionKey]float64{
		CriterionDocumentation: 0.25,
		CriterionTesting:       0.25,
		CriterionActivity:      0.20,
		CriterionPopularity:    0.15,
		CriterionOrganization:  0.15,
	}
}

// TierFor maps a 0-100 overall score to its quality tier.
func TierFor(score int) Tier {
	switch {
	case score >= ExcellentThreshold:
		return ExcellentTier
	case score >= GoodThreshold:
		return GoodTier
	case score >= NeedsImprovementThreshold:
		return NeedsImprovementTier
	default:
		return PoorTier
	}
}
