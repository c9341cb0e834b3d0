package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/zarmaks/gitfolio/internal/contract"
	"github.com/zarmaks/gitfolio/schema"
)

// WriteRoleCatalog outputs the available target roles, dispatching based on
// the output format configured.
func WriteRoleCatalog(catalog []schema.RoleProfile, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, catalog)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, rolesCSVHeader, func(cw *csv.Writer) error {
				return writeRolesCSVRows(cw, catalog)
			})
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRolesText(w, catalog, cfg)
		}, "Wrote text")
	}
	return nil
}

var rolesCSVHeader = []string{
	"role",
	"skill",
	"required",
	"resources",
}

// writeRolesCSVRows writes one row per role skill.
func writeRolesCSVRows(w *csv.Writer, catalog []schema.RoleProfile) error {
	for _, role := range catalog {
		for _, skill := range role.Skills {
			rec := []string{
				role.Name,
				skill.Skill,
				fmt.Sprintf("%.2f", skill.Required),
				strings.Join(skill.Resources, "|"),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeRolesText prints each role with its skills and project ideas.
func writeRolesText(w io.Writer, catalog []schema.RoleProfile, cfg *contract.Config) error {
	if _, err := fmt.Fprintf(w, "%sAvailable target roles\n", emojiPrefix(cfg, "🧭")); err != nil {
		return err
	}

	for _, role := range catalog {
		if _, err := fmt.Fprintf(w, "\n%s\n", role.Name); err != nil {
			return err
		}
		if len(role.Aliases) > 0 {
			if _, err := fmt.Fprintf(w, "  Aliases: %s\n", strings.Join(role.Aliases, ", ")); err != nil {
				return err
			}
		}
		for _, skill := range role.Skills {
			if _, err := fmt.Fprintf(w, "  %s (required %.2f)\n", skill.Skill, skill.Required); err != nil {
				return err
			}
		}
		if len(role.Projects) > 0 {
			if _, err := fmt.Fprintf(w, "  Projects: %s\n", strings.Join(role.Projects, "; ")); err != nil {
				return err
			}
		}
	}
	return nil
}
