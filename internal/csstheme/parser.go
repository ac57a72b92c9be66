package csstheme

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	core "github.com/yacobolo/csstheme"
	"go.uber.org/zap"
)

// Inspector checks generated stylesheets: output must be flat, identical
// rule bodies should have been merged and frequent inline defaults hoisted.
type Inspector struct {
	log *zap.Logger
}

// NewInspector creates a new stylesheet inspector
func NewInspector(log *zap.Logger) *Inspector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Inspector{log: log.Named("inspector")}
}

// frame is an open block while walking the grammar
type frame struct {
	atRule   bool
	selector string
	body     strings.Builder
	topLevel bool
}

// ruleset is a closed top-level ruleset
type ruleset struct {
	selector string
	body     string
}

// Check inspects every file matching config.Files
func (in *Inspector) Check(config CheckConfig) (*CheckResult, error) {
	if err := validateStruct(config); err != nil {
		return nil, err
	}

	files, err := expandFiles(config.Files)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no stylesheets matched %v", config.Files)
	}

	result := &CheckResult{}
	for _, file := range files {
		// #nosec G304 - path comes from trusted configuration
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}

		stats, issues := in.Inspect(content, GetRelativePath(file))
		result.FilesChecked++
		result.Issues = append(result.Issues, issues...)
		result.Stats.Rulesets += stats.Rulesets
		result.Stats.Declarations += stats.Declarations
		result.Stats.CustomProperties += stats.CustomProperties
		result.Stats.AtRules += stats.AtRules
		result.Stats.VarDefaults += stats.VarDefaults
	}

	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityError:
			result.ErrorCount++
		case SeverityWarning:
			result.WarningCount++
		}
	}
	return result, nil
}

// Inspect parses one stylesheet and returns its statistics and issues
func (in *Inspector) Inspect(content []byte, filename string) (CheckStats, []Issue) {
	in.log.Debug("inspecting stylesheet", zap.String("file", filename), zap.Int("bytes", len(content)))

	text := string(content)
	stats, rulesets, parseErr := in.walk(content)

	var issues []Issue
	if parseErr != nil {
		issues = append(issues, Issue{
			Check:    CheckSyntax,
			Text:     fmt.Sprintf(IssueSyntax, parseErr),
			Severity: SeverityError,
			Pos:      IssuePos{Filename: filename},
		})
	}
	issues = append(issues, nestingIssues(text, filename)...)
	issues = append(issues, duplicateBodyIssues(text, filename, rulesets)...)

	defaults, refs := inlineDefaultIssues(text, filename)
	stats.VarDefaults = refs
	issues = append(issues, defaults...)

	return stats, issues
}

// walk runs the grammar parser over content, counting constructs and
// collecting top-level rulesets.
func (in *Inspector) walk(content []byte) (CheckStats, []ruleset, error) {
	var stats CheckStats
	var rulesets []ruleset
	var stack []*frame

	p := css.NewParser(parse.NewInput(bytes.NewReader(content)), false)
	for {
		gt, _, data := p.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && !errors.Is(err, io.EOF) {
				in.log.Debug("CSS parse error", zap.Error(err))
				return stats, rulesets, err
			}
			return stats, rulesets, nil

		case css.AtRuleGrammar:
			stats.AtRules++

		case css.BeginAtRuleGrammar:
			stats.AtRules++
			stack = append(stack, &frame{atRule: true, topLevel: len(stack) == 0})

		case css.BeginRulesetGrammar:
			stats.Rulesets++
			stack = append(stack, &frame{
				selector: selectorText(data, p.Values()),
				topLevel: len(stack) == 0,
			})

		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !top.atRule && top.topLevel {
				rulesets = append(rulesets, ruleset{selector: top.selector, body: top.body.String()})
			}

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			if gt == css.CustomPropertyGrammar {
				stats.CustomProperties++
			} else {
				stats.Declarations++
			}
			if len(stack) > 0 {
				body := &stack[len(stack)-1].body
				body.Write(data)
				body.WriteByte(':')
				body.WriteString(tokensText(p.Values()))
				body.WriteByte(';')
			}
		}
	}
}

// selectorText builds the selector string from token data and values
func selectorText(data []byte, values []css.Token) string {
	var sb strings.Builder
	sb.Write(data)
	sb.WriteString(tokensText(values))
	return strings.TrimSpace(sb.String())
}

func tokensText(tokens []css.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.Write(t.Data)
	}
	return strings.TrimSpace(sb.String())
}

// cssBlock is an open brace block seen by the lexer
type cssBlock struct {
	atRule   bool
	selector string
}

// enclosingRuleset returns the innermost open ruleset, looking through at-rules
func enclosingRuleset(stack []cssBlock) (string, bool) {
	for i := len(stack) - 1; i >= 0; i-- {
		if !stack[i].atRule {
			return stack[i].selector, true
		}
	}
	return "", false
}

// nestingIssues reports rulesets opened inside another ruleset. The lexer is
// used directly so that offsets are exact.
func nestingIssues(text, filename string) []Issue {
	var issues []Issue
	var stack []cssBlock
	var prelude strings.Builder
	preludeStart := 0
	offset := 0

	lexer := css.NewLexer(parse.NewInputString(text))
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			break
		}

		switch tt {
		case css.LeftBraceToken:
			raw := prelude.String()
			sel := strings.TrimSpace(raw)
			b := cssBlock{atRule: strings.HasPrefix(sel, "@"), selector: sel}
			if parent, ok := enclosingRuleset(stack); ok && !b.atRule {
				start := preludeStart + len(raw) - len(strings.TrimLeft(raw, " \t\r\n\f"))
				line, col := lineCol(text, start)
				issues = append(issues, Issue{
					Check:       CheckNesting,
					Text:        fmt.Sprintf(IssueNested, sel, parent),
					Severity:    SeverityError,
					SourceLines: []string{sourceLine(text, line)},
					Pos:         IssuePos{Filename: filename, Line: line, Column: col},
				})
			}
			stack = append(stack, b)
			prelude.Reset()
			preludeStart = offset + len(data)
		case css.RightBraceToken, css.SemicolonToken:
			if tt == css.RightBraceToken && len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			prelude.Reset()
			preludeStart = offset + len(data)
		case css.CommentToken:
			if prelude.Len() == 0 {
				preludeStart = offset + len(data)
			}
		default:
			prelude.Write(data)
		}
		offset += len(data)
	}
	return issues
}

// duplicateBodyIssues reports top-level rulesets whose declarations equal an
// earlier ruleset's. Selector lists are not candidates.
func duplicateBodyIssues(text, filename string, rulesets []ruleset) []Issue {
	var issues []Issue
	first := make(map[string]string)
	cursor := 0

	for _, rs := range rulesets {
		pos := cursor
		if idx := strings.Index(text[cursor:], rs.selector); idx >= 0 {
			pos = cursor + idx
			cursor = pos + len(rs.selector)
		}

		if rs.body == "" || strings.Contains(rs.selector, ",") {
			continue
		}
		prev, seen := first[rs.body]
		if !seen {
			first[rs.body] = rs.selector
			continue
		}
		if prev == rs.selector {
			continue
		}

		line, col := lineCol(text, pos)
		issues = append(issues, Issue{
			Check:       CheckDuplicateBody,
			Text:        fmt.Sprintf(IssueDuplicateBody, rs.selector, prev),
			Severity:    SeverityWarning,
			SourceLines: []string{sourceLine(text, line)},
			Pos:         IssuePos{Filename: filename, Line: line, Column: col},
		})
	}
	return issues
}

// inlineDefaultIssues reports var() defaults repeated often enough to be
// hoisted. It also returns the number of var() calls with a default.
func inlineDefaultIssues(text, filename string) ([]Issue, int) {
	type usage struct {
		name, fallback string
		count          int
		start          int
	}

	refs := core.FindVarReferences(text)
	var order []string
	usages := make(map[string]*usage)
	for _, ref := range refs {
		key := ref.Name + "\x00" + ref.Fallback
		u, ok := usages[key]
		if !ok {
			u = &usage{name: ref.Name, fallback: ref.Fallback, start: ref.Start}
			usages[key] = u
			order = append(order, key)
		}
		u.count++
	}

	var issues []Issue
	for _, key := range order {
		u := usages[key]
		if u.count < core.HoistThreshold {
			continue
		}
		line, col := lineCol(text, u.start)
		issues = append(issues, Issue{
			Check:       CheckInlineDefault,
			Text:        fmt.Sprintf(IssueInlineDefault, u.name, u.fallback, u.count),
			Severity:    SeverityInfo,
			SourceLines: []string{sourceLine(text, line)},
			Pos:         IssuePos{Filename: filename, Line: line, Column: col},
		})
	}
	return issues, len(refs)
}

// lineCol converts a byte offset into a 1-based line and column
func lineCol(text string, offset int) (int, int) {
	if offset > len(text) {
		offset = len(text)
	}
	before := text[:offset]
	line := strings.Count(before, "\n") + 1
	col := offset - strings.LastIndex(before, "\n")
	return line, col
}

// sourceLine returns the 1-based line of text
func sourceLine(text string, line int) string {
	lines := strings.Split(text, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// expandFiles expands glob patterns to existing files, without duplicates
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err == nil && !info.IsDir() {
				seen[match] = true
				files = append(files, match)
			}
		}
	}
	return files, nil
}
