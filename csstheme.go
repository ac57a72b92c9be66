// Package csstheme compiles nested style trees and light/dark theme variables
// into flat CSS.
//
// # Sessions
//
// All compile state lives in a Session: the variable store, default-value
// tracking and the collected styles. Sessions are independent of each other.
//
//	s := csstheme.NewSession()
//	colors := s.Theme(csstheme.NewNode().
//		Set("light", csstheme.NewNode().Set("text", "black")).
//		Set("dark", csstheme.NewNode().Set("text", "white")))
//	text, _ := colors.Get("text") // "var(--text)"
//	s.Style(csstheme.NewNode().Set("body", csstheme.NewNode().Set("color", text)))
//	css := s.CSS(true)
//
// # Output
//
// CSS assembles a :root block (root variables, then light variables as
// defaults), an optional @media (prefers-color-scheme: dark) block and the
// collected styles. Before assembly, var() defaults used three or more times
// under the same name are hoisted into :root, and top-level rules with
// identical bodies are merged into one selector list.
//
// # CLI Tool
//
// The csstheme command builds stylesheets from YAML sources and checks
// generated output. Install with:
//
//	go install github.com/yacobolo/csstheme/cmd/csstheme@latest
package csstheme
