// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#CCCCCC"} // Relative time text
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"} // Tooltip
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#696969"} // ISO timestamp, help

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Toast borders
	ToastBorderSuccessColor = StatusSuccessColor
	ToastBorderErrorColor   = StatusErrorColor
	ToastBorderInfoColor    = lipgloss.AdaptiveColor{Light: "#3498DB", Dark: "#54A0FF"}
	ToastBorderWarnColor    = StatusWarningColor

	TextStyle     = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
	TooltipStyle  = lipgloss.NewStyle().Foreground(TextSecondaryColor)
	DateTimeStyle = lipgloss.NewStyle().Foreground(TextMutedColor).Italic(true)
	ErrorStyle    = lipgloss.NewStyle().Bold(true).Foreground(StatusErrorColor)
	HelpStyle     = lipgloss.NewStyle().Foreground(TextMutedColor).MarginTop(1)
)
