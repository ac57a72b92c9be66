package csstheme

import (
	"fmt"
	"io"
	"os"
)

// DetermineOutputFormat selects the output format from flags
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	// Explicit --quiet flag wins (exit code only)
	if quiet {
		return OutputText
	}

	switch formatFlag {
	case "json":
		return OutputJSON
	case "text", "":
		return OutputText
	default:
		// Invalid format, fall back to the default
		return OutputText
	}
}

// WriteOutput writes the check result in the specified format
func WriteOutput(w io.Writer, result *CheckResult, format OutputFormat, config CheckConfig) {
	switch format {
	case OutputJSON:
		if err := WriteJSON(w, result); err != nil {
			// Log error but don't crash
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
		}

	default:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)
		if config.Verbose {
			reporter.PrintStats(result.Stats)
		}
	}
}

// ExitCode returns the process exit code for a check result.
// Strict mode fails on any issue, otherwise only errors fail.
func ExitCode(result *CheckResult, strict bool) int {
	if strict && len(result.Issues) > 0 {
		return 1
	}
	if result.ErrorCount > 0 {
		return 1
	}
	return 0
}
