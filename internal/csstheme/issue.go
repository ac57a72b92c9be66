package csstheme

// Issue represents a single checker finding in golangci-lint format
type Issue struct {
	Check       string   `json:"Check"`       // "nesting"
	Text        string   `json:"Text"`        // "ruleset \"a b\" is nested inside \"a\""
	Severity    string   `json:"Severity"`    // "error", "warning", "info"
	SourceLines []string `json:"SourceLines"` // Lines of CSS with the issue
	Pos         IssuePos `json:"Pos"`         // File location
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "dist/theme.css"
	Line     int    `json:"Line"`     // 35
	Column   int    `json:"Column"`   // 1 (1-based)
}

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Check names
const (
	CheckSyntax        = "syntax"
	CheckNesting       = "nesting"
	CheckDuplicateBody = "duplicate-body"
	CheckInlineDefault = "inline-default"
)

// Issue messages
const (
	IssueSyntax        = "CSS parse error: %v"
	IssueNested        = "ruleset %q is nested inside %q; output must be flat"
	IssueDuplicateBody = "ruleset %q has the same declarations as %q and could be merged"
	IssueInlineDefault = "var(--%s, %s) appears %d times; hoisting the default into :root would shorten it"
)
