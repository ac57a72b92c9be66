package csstheme

import (
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Stats describes the work done by the last assembly of a session.
type Stats struct {
	Chunks  int // collected style chunks
	Hoisted int // defaults promoted into :root, over the session lifetime
	Merged  int // rules removed by deduplication in the last assembly
}

// Session holds the state of one compile: the variable store, default-value
// tracking and the collected styles. Sessions are independent; a Session is
// safe for concurrent use, with one operation running at a time.
type Session struct {
	mu        sync.Mutex
	store     *Store
	opt       *Optimizer
	styles    []string
	scanned   int
	themeKeys ThemeKeys
	stats     Stats
	log       *zap.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// WithThemeKeys sets how light/dark keys in Theme and Vars trees are read.
func WithThemeKeys(k ThemeKeys) Option {
	return func(s *Session) {
		s.themeKeys = k
	}
}

// NewSession creates an empty compile session.
func NewSession(opts ...Option) *Session {
	s := &Session{
		store: NewStore(),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("session")
	s.opt = NewOptimizer(s.store, s.log)
	return s
}

// Store returns the session's variable store.
func (s *Session) Store() *Store {
	return s.store
}

// Optimizer returns the session's default-value optimizer.
func (s *Session) Optimizer() *Optimizer {
	return s.opt
}

// Theme registers full-theme variables: untagged leaves go to :root, leaves
// under light/dark to their partition. It returns the reference mirror of cfg.
func (s *Session) Theme(cfg *Node, opts ...VarOption) *Node {
	return s.collect(cfg, true, opts)
}

// Vars registers component variables. Only leaves under light/dark keys are
// written; the others are referenced with their value as inline default.
func (s *Session) Vars(cfg *Node, opts ...VarOption) *Node {
	return s.collect(cfg, false, opts)
}

func (s *Session) collect(cfg *Node, theme bool, opts []VarOption) *Node {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := &collector{
		store: s.store,
		opt:   s.opt,
		keys:  s.themeKeys,
		theme: theme,
		log:   s.log,
	}
	return c.collect(cfg, opts...)
}

// Style compiles cfg and appends the result to the collected styles.
// It returns the compiled CSS; an empty result is not collected.
func (s *Session) Style(cfg *Node) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	css := newCompiler(s.log).compile(cfg, "")
	if css != "" {
		s.styles = append(s.styles, css)
	}
	return css
}

// StyleSelectors compiles styles under the comma-joined selectors.
func (s *Session) StyleSelectors(selectors []string, styles *Node) string {
	return s.Style(NewNode().Set(strings.Join(selectors, ","), styles))
}

// CSS assembles the final stylesheet: the :root block, the dark override
// block when dark variables exist, then the collected styles when
// includeStyles is set. Rules with identical bodies are merged.
func (s *Session) CSS(includeStyles bool) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.optimize()

	chunks := []string{rootBlock(s.store)}
	if dark := darkBlock(s.store); dark != "" {
		chunks = append(chunks, dark)
	}
	if includeStyles && len(s.styles) > 0 {
		chunks = append(chunks, strings.Join(s.styles, "\n\n"))
	}

	out, merged := dedupe(strings.Join(chunks, "\n") + "\n")
	s.stats.Merged = merged
	s.log.Debug("assembled css",
		zap.Int("chunks", len(s.styles)),
		zap.Int("merged", merged),
		zap.Bool("styles", includeStyles))
	return finish(out)
}

// Styles returns only the collected styles, optimized and deduplicated.
func (s *Session) Styles() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.optimize()
	if len(s.styles) == 0 {
		return ""
	}
	out, merged := dedupe(strings.Join(s.styles, "\n\n"))
	s.stats.Merged = merged
	return finish(out)
}

// optimize counts the defaults of chunks collected since the last call,
// hoists the frequent ones and rewrites every chunk.
func (s *Session) optimize() {
	for _, chunk := range s.styles[s.scanned:] {
		s.opt.Scan(chunk)
	}
	s.scanned = len(s.styles)

	hoisted := s.opt.Hoist()
	s.stats.Hoisted += len(hoisted)
	if len(hoisted) == 0 && s.stats.Hoisted == 0 {
		return
	}
	for i, chunk := range s.styles {
		s.styles[i] = s.opt.Rewrite(chunk)
	}
}

// Stats returns the counters of the session.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stats
	st.Chunks = len(s.styles)
	return st
}

// Reset clears all variables, tracking and styles.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Reset()
	s.opt.Reset()
	s.styles = nil
	s.scanned = 0
	s.stats = Stats{}
}

// finish ends css with exactly one newline.
func finish(css string) string {
	return strings.TrimRight(css, "\n") + "\n"
}
