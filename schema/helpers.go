package schema

import (
	"fmt"
	"strings"
)

// TruncateText shortens s to at most max runes, appending an ellipsis when
// something was cut. A max below 4 returns the bare prefix.
func TruncateText(s string, max int) string {
	rr := []rune(s)
	if len(rr) <= max {
		return s
	}
	if max < 4 {
		return string(rr[:max])
	}
	return string(rr[:max-3]) + "..."
}

// FormatPercent renders a [0,1] fraction as a percentage with one decimal,
// e.g. 0.833 -> "83.3%".
func FormatPercent(frac float64) string {
	return fmt.Sprintf("%.1f%%", frac*100)
}

// FormatLanguages renders an ordered language distribution as a compact
// single-line summary, e.g. "Python 83.3%, JavaScript 16.7%".
func FormatLanguages(shares []LanguageShare) string {
	parts := make([]string, 0, len(shares))
	for _, s := range shares {
		parts = append(parts, s.Language+" "+FormatPercent(s.Fraction))
	}
	return strings.Join(parts, ", ")
}

// NormalizeTopic canonicalizes a repository topic for comparison: lowercased
// and trimmed. GitHub topics are already hyphenated lowercase, but snapshots
// from other sources may not be.
func NormalizeTopic(topic string) string {
	return strings.ToLower(strings.TrimSpace(topic))
}
