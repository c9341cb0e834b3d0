package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/zarmaks/gitfolio/internal/contract"
	"github.com/zarmaks/gitfolio/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteRepositoryReport outputs the single-repository deep dive, dispatching
// based on the output format configured.
func WriteRepositoryReport(report *schema.RepositoryReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, repoCSVHeader, func(cw *csv.Writer) error {
				return writeRepoCSVRows(cw, report)
			})
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRepoText(w, report, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

var repoCSVHeader = []string{
	"repo",
	"criterion",
	"weight",
	"value",
	"weighted",
	"overall",
	"tier",
}

// writeRepoCSVRows writes one row per criterion contribution.
func writeRepoCSVRows(w *csv.Writer, report *schema.RepositoryReport) error {
	for _, row := range report.Score.Breakdown {
		rec := []string{
			report.Snapshot.Name,
			string(row.Criterion),
			fmt.Sprintf("%.2f", row.Weight),
			fmt.Sprintf("%.2f", row.Value),
			fmt.Sprintf("%.1f", row.Weighted),
			strconv.Itoa(report.Score.Overall),
			contract.GetPlainTierLabel(report.Score.Tier),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeRepoText generates and writes the human-readable repository view.
func writeRepoText(w io.Writer, report *schema.RepositoryReport, cfg *contract.Config, duration time.Duration) error {
	snap := report.Snapshot
	title := snap.Name
	if snap.Archived {
		title += " (archived)"
	}
	if _, err := fmt.Fprintf(w, "%sRepository %s\n", emojiPrefix(cfg, "🔍"), title); err != nil {
		return err
	}
	if snap.Description != "" {
		if _, err := fmt.Fprintf(w, "%s\n", snap.Description); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Language: %s (%d total) | Stars: %d | Forks: %d | Open issues: %d\n",
		snap.PrimaryLanguage, report.Metrics.LanguageCount, snap.Stars, snap.Forks, snap.OpenIssues); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Last push: %d days ago (%s)\n\n",
		report.Metrics.DaysSincePush, report.Metrics.Recency); err != nil {
		return err
	}

	if err := writeBreakdownTable(w, report.Score.Breakdown); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\nOverall: %d (%s)\n",
		report.Score.Overall, contract.GetColorTierLabel(report.Score.Tier)); err != nil {
		return err
	}

	if err := writeSuggestionList(w, report.Suggestions, cfg); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\nAnalysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeBreakdownTable renders the criterion contribution table.
func writeBreakdownTable(w io.Writer, breakdown []schema.CriterionContribution) error {
	table := tablewriter.NewWriter(w)

	table.Header([]string{"Criterion", "Weight", "Value", "Weighted"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, row := range breakdown {
		data = append(data, []string{
			string(row.Criterion),
			fmt.Sprintf("%.2f", row.Weight),
			fmt.Sprintf("%.2f", row.Value),
			fmt.Sprintf("%.1f", row.Weighted),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
