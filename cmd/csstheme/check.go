package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/csstheme/internal/csstheme"
)

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Check generated stylesheets",
	Long: `Parse generated CSS and report nested rulesets, rules that could be merged
and inline var() defaults repeated often enough to be hoisted.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(_ *cobra.Command, args []string) error {
		return runCheck(args)
	},
}

func init() {
	f := checkCmd.Flags()
	f.Bool("strict", false, "Exit 1 on any issue (CI mode)")
	f.String("format", "", "Output format: text|json")
	f.Bool("print-lines", true, "Show source lines with issues")
}

// runCheck is shared between `csstheme check` and `csstheme generate --check`.
func runCheck(files []string) error {
	config := buildCheckConfig(files)
	quiet := getBoolWithFallback("quiet", "quiet", false)

	log := newLogger(config.Verbose, quiet)
	defer func() { _ = log.Sync() }()

	result, err := csstheme.NewInspector(log).Check(config)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	format := csstheme.DetermineOutputFormat(getStringWithFallback("format", "check.format", ""), quiet)
	if !quiet {
		csstheme.WriteOutput(os.Stdout, result, format, config)
	}

	// Exit code: strict mode fails on any issue, otherwise only errors fail
	if code := csstheme.ExitCode(result, config.Strict); code != 0 {
		os.Exit(code)
	}

	return nil
}
