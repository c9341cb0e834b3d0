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

// WritePortfolioReport outputs the portfolio analysis, dispatching based on the output format configured.
func WritePortfolioReport(report *schema.PortfolioReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, portfolioCSVHeader, func(cw *csv.Writer) error {
				return writePortfolioCSVRows(cw, report)
			})
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable text with a table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePortfolioText(w, report, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

var portfolioCSVHeader = []string{
	"rank",
	"name",
	"language",
	"stars",
	"recency",
	"overall",
	"tier",
	"archived",
}

// writePortfolioCSVRows writes one row per scored repository, ranked best first.
func writePortfolioCSVRows(w *csv.Writer, report *schema.PortfolioReport) error {
	for i, repo := range report.Repos {
		rec := []string{
			strconv.Itoa(i + 1),
			repo.Name,
			repo.PrimaryLanguage,
			strconv.Itoa(repo.Stars),
			string(repo.Recency),
			strconv.Itoa(repo.Overall),
			contract.GetPlainTierLabel(repo.Tier),
			strconv.FormatBool(repo.Archived),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writePortfolioText generates and writes the human-readable portfolio view.
func writePortfolioText(w io.Writer, report *schema.PortfolioReport, cfg *contract.Config, duration time.Duration) error {
	if err := writePortfolioHeader(w, report, cfg); err != nil {
		return err
	}

	if err := writePortfolioTable(w, report.Repos, cfg); err != nil {
		return err
	}

	if len(report.PopularRepos) > 0 {
		if _, err := fmt.Fprintf(w, "\n%sMost popular:\n", emojiPrefix(cfg, "⭐")); err != nil {
			return err
		}
		for _, repo := range report.PopularRepos {
			if _, err := fmt.Fprintf(w, "  %s (%d stars)\n", repo.Name, repo.Stars); err != nil {
				return err
			}
		}
	}

	if err := writeSuggestionList(w, report.Suggestions, cfg); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\nAnalyzed %d repositories in %v. Cache backend: %s\n",
		report.Profile.RepositoryCount, duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writePortfolioHeader prints the aggregate profile summary lines.
func writePortfolioHeader(w io.Writer, report *schema.PortfolioReport, cfg *contract.Config) error {
	title := report.User.Login
	if report.User.Name != "" {
		title = fmt.Sprintf("%s (%s)", report.User.Login, report.User.Name)
	}
	if _, err := fmt.Fprintf(w, "%sPortfolio for %s\n", emojiPrefix(cfg, "📊"), title); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Repositories: %d | Total stars: %d | Average score: %.1f\n",
		report.Profile.RepositoryCount, report.Profile.TotalStars, report.Profile.AverageScore); err != nil {
		return err
	}

	languages := report.Profile.OrderedLanguages()
	if len(languages) > 0 {
		limit := min(len(languages), 3)
		if _, err := fmt.Fprint(w, "Top languages:"); err != nil {
			return err
		}
		for _, share := range languages[:limit] {
			if _, err := fmt.Fprintf(w, " %s %.0f%%", share.Language, share.Fraction*100); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	buckets := report.Profile.ActivityBuckets
	if _, err := fmt.Fprintf(w, "Activity: %d active, %d stale, %d dormant\n",
		buckets[schema.ActiveBucket], buckets[schema.StaleBucket], buckets[schema.DormantBucket]); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Coverage: %.0f%% with tests, %.0f%% with CI\n\n",
		report.Profile.TestsFraction*100, report.Profile.CIFraction*100); err != nil {
		return err
	}
	return nil
}

// writePortfolioTable renders the ranked repository table.
func writePortfolioTable(w io.Writer, repos []schema.RepoScoreSummary, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)

	table.Header([]string{"Rank", "Name", "Language", "Stars", "Recency", "Score", "Tier"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxNameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	for i, repo := range repos {
		name := truncateName(repo.Name, maxNameWidth)
		if repo.Archived {
			name += " (archived)"
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			name,
			repo.PrimaryLanguage,
			strconv.Itoa(repo.Stars),
			string(repo.Recency),
			strconv.Itoa(repo.Overall),
			contract.GetColorTierLabel(repo.Tier),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeSuggestionList prints ranked suggestions with severity labels.
func writeSuggestionList(w io.Writer, suggestions []schema.Suggestion, cfg *contract.Config) error {
	if len(suggestions) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\n%sSuggestions:\n", emojiPrefix(cfg, "💡")); err != nil {
		return err
	}
	for _, s := range suggestions {
		if _, err := fmt.Fprintf(w, "  [%s] %s: %s\n",
			contract.GetColorSeverityLabel(s.Severity), s.Target, s.Message); err != nil {
			return err
		}
	}
	return nil
}
