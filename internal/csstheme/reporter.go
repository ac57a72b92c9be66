package csstheme

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Reporter handles formatting and outputting checker results
type Reporter struct {
	w          io.Writer
	useColors  bool
	printLines bool
}

// NewReporter creates a new reporter with the given configuration
func NewReporter(w io.Writer, config CheckConfig) *Reporter {
	return &Reporter{
		w:          w,
		useColors:  shouldUseColors(config.UseColors),
		printLines: config.PrintLines,
	}
}

// shouldUseColors determines if colors should be enabled
func shouldUseColors(force bool) bool {
	// Explicit flag wins
	if force {
		return true
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// PrintIssues outputs issues in golangci-lint format
func (r *Reporter) PrintIssues(issues []Issue) {
	sorted := make([]Issue, len(issues))
	copy(sorted, issues)

	// Sort issues by file, then line, then column
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Pos.Filename != sorted[j].Pos.Filename {
			return sorted[i].Pos.Filename < sorted[j].Pos.Filename
		}
		if sorted[i].Pos.Line != sorted[j].Pos.Line {
			return sorted[i].Pos.Line < sorted[j].Pos.Line
		}
		return sorted[i].Pos.Column < sorted[j].Pos.Column
	})

	for _, issue := range sorted {
		r.printIssue(issue)
	}
}

// printIssue formats a single issue in golangci-lint style
func (r *Reporter) printIssue(issue Issue) {
	// Format: file:line:col: severity: message (check)
	location := fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)

	fmt.Fprintf(r.w, "%s %s %s%s\n",
		paint(locationStyle, location, r.useColors),
		severityLabel(issue.Severity, r.useColors),
		issue.Text,
		paint(checkNameStyle, fmt.Sprintf(" (%s)", issue.Check), r.useColors))

	// Print source lines with caret indicator
	if r.printLines && len(issue.SourceLines) > 0 && issue.SourceLines[0] != "" {
		for _, line := range issue.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}

		caret := r.buildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", paint(caretStyle, caret, r.useColors))
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the column
// Handles tabs vs spaces so the caret lines up under the source line
func (r *Reporter) buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}

	var padding strings.Builder
	for _, ch := range sourceLine[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// PrintSummary outputs the issue count summary
func (r *Reporter) PrintSummary(result CheckResult) {
	total := len(result.Issues)
	infos := total - result.ErrorCount - result.WarningCount

	fmt.Fprintln(r.w, "")
	if total == 0 {
		fmt.Fprintln(r.w, paint(cleanStyle,
			fmt.Sprintf("No issues in %s", pluralizeCount(result.FilesChecked, "stylesheet", "stylesheets")),
			r.useColors))
	} else {
		fmt.Fprintf(r.w, "%s (%s, %s, %s):\n",
			pluralizeCount(total, "issue", "issues"),
			pluralizeCount(result.ErrorCount, "error", "errors"),
			pluralizeCount(result.WarningCount, "warning", "warnings"),
			pluralizeCount(infos, "info", "infos"))

		// Group by check, in a stable order
		checkCounts := make(map[string]int)
		var checks []string
		for _, issue := range result.Issues {
			if checkCounts[issue.Check] == 0 {
				checks = append(checks, issue.Check)
			}
			checkCounts[issue.Check]++
		}
		sort.Strings(checks)
		for _, check := range checks {
			fmt.Fprintf(r.w, "* %s: %d\n", check, checkCounts[check])
		}
	}
}

// PrintStats outputs what the checker counted
func (r *Reporter) PrintStats(stats CheckStats) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, paint(locationStyle, "Statistics", r.useColors))
	fmt.Fprintf(r.w, "  Rulesets:          %d\n", stats.Rulesets)
	fmt.Fprintf(r.w, "  Declarations:      %d\n", stats.Declarations)
	fmt.Fprintf(r.w, "  Custom properties: %d\n", stats.CustomProperties)
	fmt.Fprintf(r.w, "  At-rules:          %d\n", stats.AtRules)
	fmt.Fprintf(r.w, "  Inline defaults:   %d\n", stats.VarDefaults)
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}
