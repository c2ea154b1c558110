package tui

import "github.com/charmbracelet/lipgloss"

// labelWidth fits the longest field label plus padding.
const labelWidth = 12

var (
	accentColor = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}
	dimColor    = lipgloss.AdaptiveColor{Light: "240", Dark: "245"}
	errorColor  = lipgloss.AdaptiveColor{Light: "1", Dark: "9"}
	okColor     = lipgloss.AdaptiveColor{Light: "2", Dark: "10"}
)

// TitleStyle renders the form heading.
func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(accentColor)
}

// LabelStyle renders a field label, highlighted when the field has focus.
func LabelStyle(focused bool) lipgloss.Style {
	s := lipgloss.NewStyle().Width(labelWidth)
	if focused {
		return s.Bold(true).Foreground(accentColor)
	}
	return s.Foreground(dimColor)
}

// ErrorStyle renders a field error line.
func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(errorColor).PaddingLeft(labelWidth)
}

// StatusStyle renders the submit outcome line.
func StatusStyle(ok bool) lipgloss.Style {
	if ok {
		return lipgloss.NewStyle().Foreground(okColor)
	}
	return lipgloss.NewStyle().Foreground(errorColor)
}
