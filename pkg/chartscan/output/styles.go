package output

import "github.com/charmbracelet/lipgloss"

// Color constants using the ANSI 256-color palette, giving all
// formatters a consistent scheme.
const (
	// ColorPrimary is used for headers (bright blue).
	ColorPrimary = lipgloss.Color("39")

	// ColorWarning is used for skipped-item notices (orange).
	ColorWarning = lipgloss.Color("214")

	// ColorMuted is used for secondary text (gray).
	ColorMuted = lipgloss.Color("245")
)

// Box and text styles shared by the pretty formatter.
var (
	// HeaderBox contains the scan metadata.
	HeaderBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1).
			MarginBottom(1)

	// LabelStyle is used for field labels (e.g., "Root:").
	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// ValueStyle is used for field values.
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	// PathStyle is used for file paths in the table.
	PathStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	// MutedStyle is used for fingerprints and summary counts.
	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// WarningStyle is used for skipped-item lines.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)
