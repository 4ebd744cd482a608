package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/vedit/internal/editor"
)

var (
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#9CA0B0", Dark: "#696969"}
	StatusBgColor      = lipgloss.AdaptiveColor{Light: "#DCE0E8", Dark: "#2D3436"}
	StatusTextColor    = lipgloss.AdaptiveColor{Light: "#4C4F69", Dark: "#CCCCCC"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#D20F39", Dark: "#FF8787"}

	// Mode badge backgrounds
	ModeNormalColor  = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#54A0FF"}
	ModeInsertColor  = lipgloss.AdaptiveColor{Light: "#40A02B", Dark: "#73F59F"}
	ModeVisualColor  = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"}
	ModeCommandColor = lipgloss.AdaptiveColor{Light: "#FE640B", Dark: "#FAB387"}

	TildeStyle     = lipgloss.NewStyle().Foreground(TextMutedColor)
	CursorStyle    = lipgloss.NewStyle().Reverse(true)
	SelectionStyle = lipgloss.NewStyle().Reverse(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(StatusTextColor).
			Background(StatusBgColor)
	WarningStyle = lipgloss.NewStyle().Foreground(StatusWarningColor).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(StatusErrorColor).Bold(true)

	modeBadgeStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(lipgloss.Color("#1E1E2E"))
)

// ModeBadge renders the mode name as a coloured badge.
func ModeBadge(m editor.Mode) string {
	bg := ModeNormalColor
	switch m {
	case editor.ModeInsert:
		bg = ModeInsertColor
	case editor.ModeVisual:
		bg = ModeVisualColor
	case editor.ModeCommand:
		bg = ModeCommandColor
	}
	return modeBadgeStyle.Background(bg).Render(m.String())
}
