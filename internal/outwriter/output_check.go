package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/zarmaks/gitfolio/internal/contract"
	"github.com/zarmaks/gitfolio/schema"
)

// WriteCheckReport outputs the threshold gate result, dispatching based on
// the output format configured.
func WriteCheckReport(report *schema.CheckReport, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, checkCSVHeader, func(cw *csv.Writer) error {
				return writeCheckCSVRow(cw, report)
			})
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCheckText(w, report, cfg)
		}, "Wrote text")
	}
	return nil
}

var checkCSVHeader = []string{
	"username",
	"average_score",
	"threshold",
	"passed",
	"repo_count",
}

func writeCheckCSVRow(w *csv.Writer, report *schema.CheckReport) error {
	return w.Write([]string{
		report.Username,
		fmt.Sprintf("%.1f", report.AverageScore),
		fmt.Sprintf("%.1f", report.Threshold),
		strconv.FormatBool(report.Passed),
		strconv.Itoa(report.RepoCount),
	})
}

// writeCheckText prints the pass/fail verdict with the score summary.
func writeCheckText(w io.Writer, report *schema.CheckReport, cfg *contract.Config) error {
	var verdict string
	if report.Passed {
		verdict = emojiPrefix(cfg, "✅") + color.New(color.FgGreen, color.Bold).Sprint("PASS")
	} else {
		verdict = emojiPrefix(cfg, "❌") + color.New(color.FgRed, color.Bold).Sprint("FAIL")
	}

	if _, err := fmt.Fprintf(w, "%s %s: average score %.1f against threshold %.1f (%d repositories)\n",
		verdict, report.Username, report.AverageScore, report.Threshold, report.RepoCount); err != nil {
		return err
	}
	return nil
}
