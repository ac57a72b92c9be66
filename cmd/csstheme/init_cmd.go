package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .csstheme.yaml config file",
	Long:  `Create a .csstheme.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".csstheme.yaml"); err == nil && !force {
			return fmt.Errorf(".csstheme.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".csstheme.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Println("Created .csstheme.yaml")
		return nil
	},
}

const defaultConfig = `# csstheme configuration
# Docs: https://github.com/yacobolo/csstheme

# Shared settings
verbose: false

# Build settings
generate:
  source: styles
  include:
    - "**/*.theme.yaml"
    - "**/*.theme.yml"
  output: dist/theme.css
  styles: true             # false = variable blocks only
  theme-keys: scope        # scope | literal (light/dark keys in vars)
  cache-size: 16           # 0 = unbounded; builds cached across --watch rebuilds
  watch: false             # rebuild on source changes

# Checker settings
check:
  files:
    - dist/theme.css
  strict: false
  format: text             # text | json
  print-lines: true        # quote the source line under each issue
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
