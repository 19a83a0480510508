package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/artpar/docsmith/cli"
	"github.com/artpar/docsmith/config"
	"github.com/artpar/docsmith/gen"
)

// rootCmd generates documentation. Flag parsing is left to the schema-driven
// binder so that every configuration attribute declares its own flag exactly
// once; cobra only dispatches subcommands.
var rootCmd = &cobra.Command{
	Use:   "docsmith",
	Short: "Documentation generator for Swift projects",
	Long: `Docsmith generates documentation for Swift projects.

Run with no arguments in a project directory to document it into ./docs.
A *.podspec or *.podspec.json file in the working directory prefills the
author, module name, and version.

Preview and tooling:
  docsmith serve      # Preview generated docs locally
  docsmith validate   # Validate a config file
  docsmith version    # Print version information

Run 'docsmith --help' for the full list of generation options.`,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	RunE:               runGenerate,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprintln(os.Stderr, "Run 'docsmith --help' for usage.")
		}
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	binder := cli.NewBinder(logger)
	binder.Version = version

	cfg, err := binder.Parse(args)
	if err != nil {
		return err
	}

	holder := config.NewHolder(logger)
	holder.Set(cfg)

	pipeline := gen.NewPipeline(
		&gen.SourceKittenAnalyzer{Logger: logger},
		gen.DeclarationWriter{},
		logger,
	)
	return pipeline.Run(context.Background(), holder.Current())
}
