package csstheme

import "github.com/charmbracelet/lipgloss"

// Checker output colors, keyed by what they mark rather than by hue.
// Lipgloss degrades them on terminals with fewer colors.
var (
	// locationStyle marks file:line:col prefixes and the statistics header.
	locationStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	// caretStyle marks the column indicator under a quoted source line.
	caretStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	// cleanStyle marks the summary of a stylesheet without issues.
	cleanStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	// checkNameStyle marks the check name appended to each issue.
	checkNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// severityStyles colors the severity label of an issue. Nested rulesets
	// are errors, mergeable rules warnings, hoistable defaults infos.
	severityStyles = map[string]lipgloss.Style{
		SeverityError:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		SeverityWarning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	}
)

// paint renders text with style, or returns it unchanged without colors.
func paint(style lipgloss.Style, text string, useColors bool) string {
	if !useColors {
		return text
	}
	return style.Render(text)
}

// severityLabel renders "severity:" in the color of that severity.
func severityLabel(severity string, useColors bool) string {
	style, ok := severityStyles[severity]
	if !ok {
		style = checkNameStyle
	}
	return paint(style, severity+":", useColors)
}
