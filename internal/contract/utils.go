package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/zarmaks/gitfolio/schema"
)

// Color variables for console output.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold) // top-tier signal
	GoodColor      = color.New(color.FgCyan)              // healthy, no action needed
	NeedsWorkColor = color.New(color.FgYellow)            // standard caution, not bold
	PoorColor      = color.New(color.FgRed, color.Bold)   // standard danger

	HighSevColor   = color.New(color.FgRed, color.Bold)
	MediumSevColor = color.New(color.FgYellow)
	LowSevColor    = color.New(color.FgCyan)
)

// GetPlainTierLabel returns the plain text label for a quality tier. This is
// the core logic used for CSV, JSON, and table printing.
func GetPlainTierLabel(tier schema.Tier) string {
	switch tier {
	case schema.ExcellentTier:
		return "Excellent"
	case schema.GoodTier:
		return "Good"
	case schema.NeedsImprovementTier:
		return "Needs Work"
	default:
		return "Poor"
	}
}

// GetColorTierLabel returns a colored tier label for console output (table).
// It uses GetPlainTierLabel to determine the string, then applies the color.
func GetColorTierLabel(tier schema.Tier) string {
	text := GetPlainTierLabel(tier)

	switch tier {
	case schema.ExcellentTier:
		return ExcellentColor.Sprint(text)
	case schema.GoodTier:
		return GoodColor.Sprint(text)
	case schema.NeedsImprovementTier:
		return NeedsWorkColor.Sprint(text)
	default:
		return PoorColor.Sprint(text)
	}
}

// GetPlainSeverityLabel returns the plain text label for a severity.
func GetPlainSeverityLabel(sev schema.Severity) string {
	switch sev {
	case schema.HighSeverity:
		return "High"
	case schema.MediumSeverity:
		return "Medium"
	default:
		return "Low"
	}
}

// GetColorSeverityLabel returns a colored severity label for console output.
func GetColorSeverityLabel(sev schema.Severity) string {
	text := GetPlainSeverityLabel(sev)

	switch sev {
	case schema.HighSeverity:
		return HighSevColor.Sprint(text)
	case schema.MediumSeverity:
		return MediumSevColor.Sprint(text)
	default:
		return LowSevColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for snapshot cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gitfolio_cache.db"
	}
	return filepath.Join(homeDir, ".gitfolio_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for history storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gitfolio_history.db"
	}
	return filepath.Join(homeDir, ".gitfolio_history.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
