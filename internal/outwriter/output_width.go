package outwriter

import (
	"os"

	"github.com/zarmaks/gitfolio/internal/contract"
	"golang.org/x/term"
)

// GetMaxTableNameWidth calculates the maximum width for repository names in
// table output based on terminal width.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns with table formatting:
	// Rank + Language + Stars + Recency + Score + Tier plus borders and padding
	baseWidth := 55

	available := termWidth - baseWidth
	if available < 12 {
		// Minimum reasonable name width
		return 12
	}
	if available > 50 {
		// Maximum name width to prevent overly wide tables
		return 50
	}
	return available
}
