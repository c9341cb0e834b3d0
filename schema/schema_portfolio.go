package schema

import "sort"

// PortfolioProfile is the aggregate view of an entire snapshot set. All maps
// are non-nil, even for an empty portfolio.
type PortfolioProfile struct {
	LanguageDistribution map[string]float64    `json:"language_distribution"` // byte-weighted fractions, sum to 1 +/- rounding
	ActivityBuckets      map[RecencyBucket]int `json:"activity_buckets"`
	ProjectTypeCounts    map[string]int        `json:"project_type_counts"`
	TotalStars           int                   `json:"total_stars"`
	RepositoryCount      int                   `json:"repository_count"`
	AverageScore         float64               `json:"average_score"`
	TopicSet             []string              `json:"topic_set"`    // unique normalized topics, sorted
	TopicCounts          map[string]int        `json:"topic_counts"` // normalized topic -> repos carrying it
	CIFraction           float64               `json:"ci_fraction"`
	TestsFraction        float64               `json:"tests_fraction"`
}

// LanguageShare is one row of an ordered language distribution view.
type LanguageShare struct {
	Language string  `json:"language"`
	Fraction float64 `json:"fraction"`
}

// OrderedLanguages returns the language distribution sorted by fraction
// descending, ties broken alphabetically.
func (p *PortfolioProfile) OrderedLanguages() []LanguageShare {
	out := make([]LanguageShare, 0, len(p.LanguageDistribution))
	for lang, frac := range p.LanguageDistribution {
		out = append(out, LanguageShare{Language: lang, Fraction: frac})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Fraction != out[j].Fraction {
			return out[i].Fraction > out[j].Fraction
		}
		return out[i].Language < out[j].Language
	})
	return out
}

// DominantLanguage returns the language holding more than the dominance
// threshold of total bytes, or "" when no language dominates.
func (p *PortfolioProfile) DominantLanguage() string {
	for lang, frac := range p.LanguageDistribution {
		if frac > DominanceThreshold {
			return lang
		}
	}
	return ""
}
