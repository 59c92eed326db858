package outwriter

import (
	"os"

	"github.com/gitrecap/gitrecap/internal/contract"
	"golang.org/x/term"
)

// getMaxTableNameWidth calculates the maximum width for repository names in
// table output based on terminal width and table configuration.
func getMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns with table formatting:
	// Rank + Commits + Share + Additions + Deletions + Activity plus
	// borders, separators, and padding.
	baseWidth := 60

	// Calculate available space for the repository name
	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable name width
		return 15
	}
	if available > 70 {
		// Maximum name width to prevent overly long names
		return 70
	}
	return available
}
