package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .designgen.yaml config file",
	Long:  `Create a .designgen.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".designgen.yaml"); err == nil && !force {
			return fmt.Errorf(".designgen.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".designgen.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Println("Created .designgen.yaml")
		return nil
	},
}

const defaultConfig = `# designgen configuration
# Docs: https://github.com/yacobolo/designgen

# Shared settings
verbose: false

# Generation settings
generate:
  input: design.json
  output-dir: src/screens
  frame: ""                # empty = first top-level frame
  typescript: true
  responsive: true
  theme-tokens: false
  tokens-css: ""           # path to a theme stylesheet, empty = mine the document
  kind: screen             # screen | component | section
  nav-shell: false
  split-styles: false

# Token extraction settings
tokens:
  input:
    - "*.json"
  json: ""                 # write tokens to this file instead of the report
  patterns: false
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
