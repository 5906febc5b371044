// Package cli wires the drizzle command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kublaj/drizzle-builder/internal/version"
	"github.com/kublaj/drizzle-builder/pkg/build"
	"github.com/kublaj/drizzle-builder/pkg/config"
	"github.com/kublaj/drizzle-builder/pkg/logging"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "drizzle",
		Short: "A pattern-library builder",
		Long: `drizzle builds a browsable pattern library from a directory tree of
content fragments. Source files carry front-matter metadata; directories
become collections with generated index pages.`,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// loadOptions reads build options for the current working directory
func loadOptions() (*config.BuildOptions, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.Load(dir)
}

func newBuildCmd() *cobra.Command {
	var dest string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the pattern library",
		Long: `Read pattern sources, assemble the pattern tree, render a page for
every collection and write the output to the destination directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions()
			if err != nil {
				return err
			}
			if dest != "" {
				opts.Dest = dest
			}

			if _, err := build.New(opts).Run(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Built pattern library into %s\n", opts.Dest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dest, "dest", "d", "", "Output directory (overrides config)")
	return cmd
}

func newListCmd() *cobra.Command {
	var showHidden bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List collections and patterns",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions()
			if err != nil {
				return err
			}

			tree, err := build.New(opts).Model()
			if err != nil {
				return err
			}

			printTree(cmd.OutOrStdout(), tree, showHidden)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showHidden, "hidden", false, "Include hidden patterns")
	return cmd
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter drizzle.toml",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "drizzle.toml"
			if err := config.WriteStarter(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "drizzle version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Built:  %s\n", version.Date)
			}
		},
	}
}
