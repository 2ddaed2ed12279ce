// Package style holds the colours and glyphs shared by every margin front end.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Amber  = lipgloss.Color("#F2A900")
	Paper  = lipgloss.Color("#FFF8E7")
	Ink    = lipgloss.Color("#1F2328")
	Muted  = lipgloss.Color("#6E7781")
	Green  = lipgloss.Color("#1A7F37")
	Red    = lipgloss.Color("#CF222E")
	Yellow = lipgloss.Color("#BF8700")
	Blue   = lipgloss.Color("#0969DA")
)

// Glyphs.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Bubble  = "💬"
	Pencil  = "📝"
	Cursor  = "›"
)
