// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/zarmaks/gitfolio/internal/contract"
	"github.com/zarmaks/gitfolio/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WritePortfolio prints a portfolio report using the configured output format.
func (ow *OutWriter) WritePortfolio(report *schema.PortfolioReport, cfg *contract.Config, duration time.Duration) error {
	return WritePortfolioReport(report, cfg, duration)
}

// WriteRepository prints a repository deep-dive report using the configured output format.
func (ow *OutWriter) WriteRepository(report *schema.RepositoryReport, cfg *contract.Config, duration time.Duration) error {
	return WriteRepositoryReport(report, cfg, duration)
}

// WriteLearningPath prints a learning path report using the configured output format.
func (ow *OutWriter) WriteLearningPath(report *schema.LearningPathReport, cfg *contract.Config) error {
	return WriteLearningPathReport(report, cfg)
}

// WriteCheck prints a threshold check report using the configured output format.
func (ow *OutWriter) WriteCheck(report *schema.CheckReport, cfg *contract.Config) error {
	return WriteCheckReport(report, cfg)
}

// WriteRoles prints the role catalog using the configured output format.
func (ow *OutWriter) WriteRoles(catalog []schema.RoleProfile, cfg *contract.Config) error {
	return WriteRoleCatalog(catalog, cfg)
}

// WriteCriteria prints the scoring criteria using the configured output format.
func (ow *OutWriter) WriteCriteria(weights map[schema.CriterionKey]float64, cfg *contract.Config) error {
	return WriteCriteriaDefinitions(weights, cfg)
}
