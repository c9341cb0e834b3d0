package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/zarmaks/gitfolio/internal/contract"
	"github.com/zarmaks/gitfolio/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// criterionDescriptions explains what each scoring criterion measures.
var criterionDescriptions = map[schema.CriterionKey]string{
	schema.CriterionDocumentation: "README presence, description and license",
	schema.CriterionTesting:       "Test suite and CI configuration",
	schema.CriterionActivity:      "Recency of the last push",
	schema.CriterionPopularity:    "Stars and forks, log scaled",
	schema.CriterionOrganization:  "Language diversity and topic labeling",
}

// criterionRow is one labeled row of the criteria view.
type criterionRow struct {
	Criterion   schema.CriterionKey `json:"criterion"`
	Weight      float64             `json:"weight"`
	Description string              `json:"description"`
}

// buildCriterionRows orders the active weights by the canonical criterion order.
func buildCriterionRows(weights map[schema.CriterionKey]float64) []criterionRow {
	rows := make([]criterionRow, 0, len(schema.CriterionOrder))
	for _, key := range schema.CriterionOrder {
		rows = append(rows, criterionRow{
			Criterion:   key,
			Weight:      weights[key],
			Description: criterionDescriptions[key],
		})
	}
	return rows
}

// WriteCriteriaDefinitions displays the scoring criteria with their active
// weights. This is a static display that does not require API access.
func WriteCriteriaDefinitions(weights map[schema.CriterionKey]float64, cfg *contract.Config) error {
	rows := buildCriterionRows(weights)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, criteriaCSVHeader, func(cw *csv.Writer) error {
				return writeCriteriaCSVRows(cw, rows)
			})
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCriteriaText(w, rows, cfg)
		}, "Wrote table")
	}
	return nil
}

var criteriaCSVHeader = []string{
	"criterion",
	"weight",
	"description",
}

func writeCriteriaCSVRows(w *csv.Writer, rows []criterionRow) error {
	for _, row := range rows {
		rec := []string{
			string(row.Criterion),
			fmt.Sprintf("%.2f", row.Weight),
			row.Description,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeCriteriaText renders the criteria table with the weight formula.
func writeCriteriaText(w io.Writer, rows []criterionRow, cfg *contract.Config) error {
	if _, err := fmt.Fprintf(w, "%sScoring criteria\n", emojiPrefix(cfg, "⚖️")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Overall = round(100 * sum(weight * value))\n\n"); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Criterion", "Weight", "Description"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, row := range rows {
		data = append(data, []string{
			string(row.Criterion),
			fmt.Sprintf("%.2f", row.Weight),
			row.Description,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
