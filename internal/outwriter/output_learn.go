package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/zarmaks/gitfolio/internal/contract"
	"github.com/zarmaks/gitfolio/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteLearningPathReport outputs the role gap analysis, dispatching based on
// the output format configured.
func WriteLearningPathReport(report *schema.LearningPathReport, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, learnCSVHeader, func(cw *csv.Writer) error {
				return writeLearnCSVRows(cw, report)
			})
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLearnText(w, report, cfg)
		}, "Wrote table")
	}
	return nil
}

var learnCSVHeader = []string{
	"role",
	"skill",
	"observed",
	"required",
	"gap",
	"resources",
}

// writeLearnCSVRows writes one row per skill gap.
func writeLearnCSVRows(w *csv.Writer, report *schema.LearningPathReport) error {
	for _, gap := range report.Gaps {
		rec := []string{
			report.Role,
			gap.Skill,
			fmt.Sprintf("%.2f", gap.Observed),
			fmt.Sprintf("%.2f", gap.Required),
			fmt.Sprintf("%.2f", gap.Gap),
			strings.Join(gap.Resources, "|"),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeLearnText generates and writes the human-readable learning path view.
func writeLearnText(w io.Writer, report *schema.LearningPathReport, cfg *contract.Config) error {
	if _, err := fmt.Fprintf(w, "%sLearning path for %s\n\n", emojiPrefix(cfg, "🎯"), report.Role); err != nil {
		return err
	}

	if err := writeGapTable(w, report.Gaps); err != nil {
		return err
	}

	if len(report.TopGaps) > 0 {
		if _, err := fmt.Fprintf(w, "\n%sFocus first:\n", emojiPrefix(cfg, "🚀")); err != nil {
			return err
		}
		for _, gap := range report.TopGaps {
			if _, err := fmt.Fprintf(w, "  %s (gap %.2f)\n", gap.Skill, gap.Gap); err != nil {
				return err
			}
			for _, resource := range gap.Resources {
				if _, err := fmt.Fprintf(w, "    %s\n", resource); err != nil {
					return err
				}
			}
		}
	} else {
		if _, err := fmt.Fprintf(w, "\nNo skill gaps found for this role.\n"); err != nil {
			return err
		}
	}

	if len(report.Projects) > 0 {
		if _, err := fmt.Fprintf(w, "\n%sProject ideas:\n", emojiPrefix(cfg, "🛠️")); err != nil {
			return err
		}
		for _, project := range report.Projects {
			if _, err := fmt.Fprintf(w, "  %s\n", project); err != nil {
				return err
			}
		}
	}
	if report.NextProject != "" {
		if _, err := fmt.Fprintf(w, "\nSuggested next project: %s\n", report.NextProject); err != nil {
			return err
		}
	}
	return nil
}

// writeGapTable renders the full gap breakdown table.
func writeGapTable(w io.Writer, gaps []schema.SkillGap) error {
	table := tablewriter.NewWriter(w)

	table.Header([]string{"Skill", "Observed", "Required", "Gap"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, gap := range gaps {
		data = append(data, []string{
			gap.Skill,
			fmt.Sprintf("%.2f", gap.Observed),
			fmt.Sprintf("%.2f", gap.Required),
			fmt.Sprintf("%.2f", gap.Gap),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
