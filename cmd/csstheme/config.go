package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/yacobolo/csstheme/internal/csstheme"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".csstheme.yaml"
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// CLI flags (highest precedence, only flags that were explicitly set)
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (CSSTHEME_* prefix)
	if err := k.Load(env.Provider("CSSTHEME_", ".", func(s string) string {
		// CSSTHEME_GENERATE_SOURCE -> generate.source
		// CSSTHEME_CHECK_STRICT -> check.strict
		// CSSTHEME_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "CSSTHEME_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildGenerateConfig constructs the build Config struct from koanf state.
func buildGenerateConfig() csstheme.Config {
	config := csstheme.Config{
		SourceDir:     getStringWithFallback("source", "generate.source", "styles"),
		OutputFile:    getStringWithFallback("output", "generate.output", "dist/theme.css"),
		IncludeStyles: getBoolWithFallback("styles", "generate.styles", true),
		ThemeKeys:     getStringWithFallback("theme-keys", "generate.theme-keys", "scope"),
		CacheSize:     getIntWithFallback("cache-size", "generate.cache-size", 16),
		Verbose:       getBoolWithFallback("verbose", "verbose", false),
	}

	// Handle includes: check flag key first, then config key
	if includes := k.Strings("include"); len(includes) > 0 {
		config.Includes = includes
	} else if includes := k.Strings("generate.include"); len(includes) > 0 {
		config.Includes = includes
	} else {
		config.Includes = []string{"**/*.theme.yaml", "**/*.theme.yml"}
	}

	return config
}

// buildCheckConfig constructs the checker CheckConfig struct from koanf state.
// Without explicit files the generated stylesheet is checked.
func buildCheckConfig(args []string) csstheme.CheckConfig {
	files := args
	if len(files) == 0 {
		files = k.Strings("check.files")
	}
	if len(files) == 0 {
		files = []string{getStringWithFallback("output", "generate.output", "dist/theme.css")}
	}

	return csstheme.CheckConfig{
		Files:      files,
		Strict:     getBoolWithFallback("strict", "check.strict", false),
		UseColors:  getBoolWithFallback("color", "color", false),
		PrintLines: getBoolWithFallback("print-lines", "check.print-lines", true),
		Verbose:    getBoolWithFallback("verbose", "verbose", false),
	}
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
