package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artpar/docsmith/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate [config-file]",
	Short: "Validate a docsmith config file",
	Long: `Validate a JSON or YAML config file.

Checks:
  - The file parses in its declared format
  - Every key names a declared configuration attribute
  - Every value passes its attribute's parse function

Examples:
  docsmith validate docsmith.yaml
  docsmith validate .docsmith.json`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	fmt.Printf("Validating %s...\n", path)

	values, err := config.LoadFile(path)
	if err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg := config.New()
	if err := config.Apply(cfg, values); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	fmt.Printf("Configuration valid\n")
	fmt.Printf("  Keys:    %d\n", len(values))
	fmt.Printf("  Module:  %s\n", cfg.ModuleName)
	fmt.Printf("  Output:  %s\n", cfg.Output)
	fmt.Printf("  Min ACL: %s\n", cfg.MinACL)
	return nil
}
