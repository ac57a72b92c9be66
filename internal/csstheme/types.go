package csstheme

// Config holds build configuration
type Config struct {
	SourceDir     string   `validate:"required"`                      // "styles"
	Includes      []string `validate:"required,min=1,dive,required"`  // ["**/*.theme.yaml"]
	OutputFile    string   `validate:"required"`                      // "dist/theme.css"
	IncludeStyles bool     // Emit collected styles after the variable blocks (default: true)
	ThemeKeys     string   `validate:"omitempty,oneof=scope literal"` // How light/dark keys in vars are read
	CacheSize     int      `validate:"gte=0"`                         // Max cached builds (0 = unbounded)
	Verbose       bool     // Enable debug logging
}

// GenerateResult contains build stats
type GenerateResult struct {
	FilesScanned int
	FilesSkipped int // Gitignored or generated files
	RootVars     int
	LightVars    int
	DarkVars     int
	Chunks       int // Compiled style chunks
	Hoisted      int // Defaults promoted into :root
	Merged       int // Rules merged by deduplication
	Bytes        int
	Cached       bool // Output came from the build cache
	OutputFile   string
	Warnings     []string
}

// CheckConfig holds output checker configuration
type CheckConfig struct {
	Files      []string `validate:"required,min=1,dive,required"`
	Strict     bool     // Any issue fails, not only errors
	UseColors  bool
	PrintLines bool     // Show source lines with issues (default: true)
	Verbose    bool
}

// CheckStats counts what the checker saw in the stylesheets
type CheckStats struct {
	Rulesets         int `json:"rulesets"`
	Declarations     int `json:"declarations"`
	CustomProperties int `json:"custom_properties"`
	AtRules          int `json:"at_rules"`
	VarDefaults      int `json:"var_defaults"` // var() calls with an inline default
}

// CheckResult contains checker findings for all files
type CheckResult struct {
	Issues       []Issue
	Stats        CheckStats
	FilesChecked int
	ErrorCount   int
	WarningCount int
}

// OutputFormat represents the checker output format
type OutputFormat string

const (
	// OutputText shows issues and a summary (terminal-friendly)
	OutputText OutputFormat = "text"
	// OutputJSON exports structured data in JSON format (tooling integration)
	OutputJSON OutputFormat = "json"
)
