package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yacobolo/csstheme/internal/csstheme"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Build a stylesheet from YAML theme sources",
	Long: `Collect theme and component variables from YAML sources, compile their
style trees and write one flat stylesheet.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.String("source", "styles", "Source directory")
	f.StringSlice("include", nil, "Glob patterns for source files to include")
	f.StringP("output", "o", "dist/theme.css", "Output stylesheet")
	f.Bool("styles", true, "Emit compiled styles after the variable blocks")
	f.String("theme-keys", "scope", "How light/dark keys in vars are read: scope|literal")
	f.Int("cache-size", 16, "Max cached builds (0=unbounded)")
	f.Bool("check", false, "Run the checker on the output after generation")
	f.BoolP("watch", "w", false, "Rebuild whenever a source file changes")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	config := buildGenerateConfig()
	quiet := getBoolWithFallback("quiet", "quiet", false)

	log := newLogger(config.Verbose, quiet)
	defer func() { _ = log.Sync() }()

	// One generator per process, so watch rebuilds share its cache
	g := csstheme.NewGenerator(log, config.CacheSize)

	if getBoolWithFallback("watch", "generate.watch", false) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if !quiet {
			fmt.Printf("Watching %s for changes (Ctrl+C to stop)\n", config.SourceDir)
		}
		return g.Watch(ctx, config, func(result *csstheme.GenerateResult, err error) {
			if err != nil {
				fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
				return
			}
			if !quiet {
				printGenerateResult(result)
			}
		})
	}

	result, err := g.Generate(config)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	if !quiet {
		printGenerateResult(result)
	}

	// Run the checker after generate if --check flag set
	check, _ := cmd.Flags().GetBool("check")
	if check {
		return runCheck([]string{result.OutputFile})
	}

	return nil
}

func printGenerateResult(result *csstheme.GenerateResult) {
	fmt.Printf("Generated %s\n", result.OutputFile)
	fmt.Printf("  Files scanned: %d\n", result.FilesScanned)
	if result.Cached {
		fmt.Printf("  Reused cached build (%d bytes)\n", result.Bytes)
	} else {
		fmt.Printf("  Variables: %d root, %d light, %d dark\n", result.RootVars, result.LightVars, result.DarkVars)
		fmt.Printf("  Style chunks: %d\n", result.Chunks)
		fmt.Printf("  Hoisted defaults: %d\n", result.Hoisted)
		fmt.Printf("  Merged rules: %d\n", result.Merged)
	}

	for _, w := range result.Warnings {
		fmt.Printf("  Warning: %s\n", w)
	}
}
