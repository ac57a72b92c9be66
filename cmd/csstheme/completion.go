package main

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for csstheme. Besides commands and flags,
the scripts complete --theme-keys and --format values, source directories for
--source and stylesheets for check.`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(_ *cobra.Command, args []string) error {
		out := os.Stdout
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		}
		return nil
	},
}

// registerCompletions wires value completion for flags and arguments. It runs
// after every command has defined its flags.
func registerCompletions() error {
	if err := generateCmd.RegisterFlagCompletionFunc("theme-keys",
		cobra.FixedCompletions([]string{"scope", "literal"}, cobra.ShellCompDirectiveNoFileComp)); err != nil {
		return err
	}
	if err := generateCmd.RegisterFlagCompletionFunc("source",
		func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveFilterDirs
		}); err != nil {
		return err
	}
	if err := checkCmd.RegisterFlagCompletionFunc("format",
		cobra.FixedCompletions([]string{"text", "json"}, cobra.ShellCompDirectiveNoFileComp)); err != nil {
		return err
	}
	checkCmd.ValidArgsFunction = func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"css"}, cobra.ShellCompDirectiveFilterFileExt
	}
	return nil
}
