package csstheme

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *CheckResult {
	return &CheckResult{
		Issues: []Issue{
			{
				Check:       CheckNesting,
				Text:        `ruleset ".b" is nested inside ".a"; output must be flat`,
				Severity:    SeverityError,
				SourceLines: []string{"  .b {"},
				Pos:         IssuePos{Filename: "theme.css", Line: 3, Column: 3},
			},
			{
				Check:    CheckInlineDefault,
				Text:     "var(--gap, 4px) appears 3 times",
				Severity: SeverityInfo,
				Pos:      IssuePos{Filename: "theme.css", Line: 7, Column: 8},
			},
		},
		Stats:        CheckStats{Rulesets: 4, Declarations: 6, VarDefaults: 3},
		FilesChecked: 1,
		ErrorCount:   1,
	}
}

func TestDetermineOutputFormat(t *testing.T) {
	assert.Equal(t, OutputJSON, DetermineOutputFormat("json", false))
	assert.Equal(t, OutputText, DetermineOutputFormat("json", true))
	assert.Equal(t, OutputText, DetermineOutputFormat("", false))
	assert.Equal(t, OutputText, DetermineOutputFormat("xml", false))
}

func TestWriteOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	WriteOutput(&buf, sampleResult(), OutputJSON, CheckConfig{})

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "1.0", out.Version)
	assert.NotEmpty(t, out.Timestamp)
	assert.Equal(t, JSONSummary{TotalIssues: 2, Errors: 1, Warnings: 0, FilesChecked: 1}, out.Summary)
	assert.Equal(t, 4, out.Stats.Rulesets)
	require.Len(t, out.Issues, 2)
	assert.Equal(t, JSONIssue{
		File:     "theme.css",
		Line:     3,
		Column:   3,
		Severity: SeverityError,
		Message:  `ruleset ".b" is nested inside ".a"; output must be flat`,
		Check:    CheckNesting,
		Source:   "  .b {",
	}, out.Issues[0])
	assert.Empty(t, out.Issues[1].Source)
}

func TestWriteOutput_Text(t *testing.T) {
	var buf bytes.Buffer
	WriteOutput(&buf, sampleResult(), OutputText, CheckConfig{Verbose: true})

	out := buf.String()
	assert.Contains(t, out, "theme.css:3:3: error: ")
	assert.Contains(t, out, "theme.css:7:8: info: var(--gap, 4px) appears 3 times (inline-default)")
	assert.Contains(t, out, "2 issues (1 error, 0 warnings, 1 info):")
	assert.Contains(t, out, "Inline defaults:   3")
}

func TestExitCode(t *testing.T) {
	result := sampleResult()
	assert.Equal(t, 1, ExitCode(result, false))

	infoOnly := &CheckResult{Issues: []Issue{{Severity: SeverityInfo}}}
	assert.Equal(t, 0, ExitCode(infoOnly, false))
	assert.Equal(t, 1, ExitCode(infoOnly, true))
	assert.Equal(t, 0, ExitCode(&CheckResult{}, true))
}
