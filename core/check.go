package core

import (
	"github.com/zarmaks/gitfolio/schema"
)

// EvaluateGate turns a portfolio report into a pass/fail check against a
// minimum average score. An empty portfolio fails: there is nothing to
// vouch for.
func EvaluateGate(report *schema.PortfolioReport, threshold float64) schema.CheckReport {
	passed := report.Profile.RepositoryCount > 0 && report.Profile.AverageScore >= threshold
	return schema.CheckReport{
		Username:     report.User.Login,
		AverageScore: report.Profile.AverageScore,
		Threshold:    threshold,
		Passed:       passed,
		RepoCount:    report.Profile.RepositoryCount,
		GeneratedAt:  report.GeneratedAt,
	}
}
