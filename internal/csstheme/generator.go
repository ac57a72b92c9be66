package csstheme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	core "github.com/yacobolo/csstheme"
	"go.uber.org/zap"
)

// ErrNoSources is returned when no source file matches the include patterns.
var ErrNoSources = errors.New("no source files matched")

// Generator builds stylesheets from YAML sources, reusing earlier builds of
// identical sources from its cache.
type Generator struct {
	log   *zap.Logger
	cache *core.Cache
}

// NewGenerator creates a generator whose cache holds at most cacheSize builds
// (0 = unbounded).
func NewGenerator(log *zap.Logger, cacheSize int) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		log:   log.Named("generator"),
		cache: core.NewCache(cacheSize),
	}
}

// Generate is the main entry point for one-shot builds
func Generate(config Config, log *zap.Logger) (*GenerateResult, error) {
	return NewGenerator(log, config.CacheSize).Generate(config)
}

// cacheKey identifies a build by everything that shapes its output
type cacheKey struct {
	ThemeKeys string      `json:"theme_keys"`
	Documents []*Document `json:"documents"`
}

// Generate runs one build and writes config.OutputFile
func (g *Generator) Generate(config Config) (*GenerateResult, error) {
	if err := validateStruct(config); err != nil {
		return nil, err
	}
	themeKeys, err := core.ParseThemeKeys(config.ThemeKeys)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	result := &GenerateResult{OutputFile: config.OutputFile}

	// 1. Discover sources
	files, stats, err := scanSources(config.SourceDir, config.Includes)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	result.FilesScanned = stats.FilesScanned
	result.FilesSkipped = stats.FilesSkipped
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSources, config.SourceDir)
	}
	g.log.Debug("found sources",
		zap.Int("files", len(files)),
		zap.Int("skipped", stats.FilesSkipped))

	// 2. Load documents
	docs, err := loadFiles(files, g.log)
	if err != nil {
		return nil, fmt.Errorf("load failed: %w", err)
	}

	// 3. Reuse an earlier build of the same sources
	key, err := core.GenerateKey(cacheKey{ThemeKeys: themeKeys.String(), Documents: docs})
	if err != nil {
		return nil, err
	}
	if css, ok := g.cached(key, config.IncludeStyles); ok {
		g.log.Debug("reusing cached build", zap.Int("bytes", len(css)))
		result.Cached = true
		result.Bytes = len(css)
		if err := writeOutput(config.OutputFile, css); err != nil {
			return nil, fmt.Errorf("write failed: %w", err)
		}
		return result, nil
	}

	// 4. Compile
	session := core.NewSession(core.WithLogger(g.log), core.WithThemeKeys(themeKeys))
	if err := compileDocuments(session, docs); err != nil {
		return nil, fmt.Errorf("compile failed: %w", err)
	}
	css := session.CSS(config.IncludeStyles)

	store := session.Store()
	sessionStats := session.Stats()
	result.RootVars = store.Len(core.Root)
	result.LightVars = store.Len(core.Light)
	result.DarkVars = store.Len(core.Dark)
	result.Chunks = sessionStats.Chunks
	result.Hoisted = sessionStats.Hoisted
	result.Merged = sessionStats.Merged
	result.Bytes = len(css)
	if !config.IncludeStyles && sessionStats.Chunks > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d style chunks compiled but excluded from output", sessionStats.Chunks))
	}

	metadata := ""
	if !config.IncludeStyles {
		metadata = core.NeedsStyles
	}
	g.cache.Set(key, css, metadata)

	// 5. Write stylesheet
	if err := writeOutput(config.OutputFile, css); err != nil {
		return nil, fmt.Errorf("write failed: %w", err)
	}

	g.log.Info("generated stylesheet",
		zap.String("output", config.OutputFile),
		zap.Int("bytes", result.Bytes),
		zap.Int("hoisted", result.Hoisted),
		zap.Int("merged", result.Merged))

	return result, nil
}

// cached returns a reusable build for key. A build made without styles only
// serves runs that also exclude styles.
func (g *Generator) cached(key string, includeStyles bool) (string, bool) {
	css, ok := g.cache.Get(key)
	if !ok {
		return "", false
	}
	if includeStyles {
		return css, !g.cache.ShouldRegenerate(key, true)
	}
	return css, g.cache.Metadata(key) == core.NeedsStyles
}

// compileDocuments registers all variables first, then compiles every style
// entry with templates rendered against the reference mirrors. The theme
// mirror is shared by all documents; .vars only ever holds the rendering
// document's own variables, and other components are reached by prefix
// through .components.
func compileDocuments(session *core.Session, docs []*Document) error {
	theme := make(map[string]any)
	components := make(map[string]any)
	docVars := make([]map[string]any, len(docs))

	for i, doc := range docs {
		opts := []core.VarOption{core.WithPrefix(doc.Prefix)}
		if doc.Theme != nil {
			mergeMirror(theme, session.Theme(doc.Theme, opts...))
		}
		docVars[i] = make(map[string]any)
		if doc.Vars == nil {
			continue
		}
		mirror := session.Vars(doc.Vars, opts...)
		mergeMirror(docVars[i], mirror)
		if doc.Prefix == "" {
			continue
		}
		shared, ok := components[doc.Prefix].(map[string]any)
		if !ok {
			shared = make(map[string]any)
			components[doc.Prefix] = shared
		}
		mergeMirror(shared, mirror)
	}

	for d, doc := range docs {
		data := newComponentData(theme, docVars[d], components)
		for i, entry := range doc.Styles {
			if entry.Styles == nil {
				continue
			}
			if err := renderTree(entry.Styles, data); err != nil {
				return fmt.Errorf("%s: styles[%d]: %w", doc.Path, i, err)
			}
			if len(entry.Selectors) > 0 {
				session.StyleSelectors(entry.Selectors, entry.Styles)
			} else {
				session.Style(entry.Styles)
			}
		}
	}
	return nil
}

// writeOutput writes css, creating parent directories as needed
func writeOutput(path, css string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(css), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
