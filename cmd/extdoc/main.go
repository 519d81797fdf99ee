package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/extdoc-hq/extdoc/internal/config"
)

var version = "dev"

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand
type globalFlags struct {
	dir     string
	verbose bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "extdoc",
		Short:         "extdoc - API documentation from ExtJS-style doc comments",
		Long:          `extdoc scans /** */ comments, resolves the class hierarchy and writes a documentation model.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogLevel(g.verbose)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&g.dir, "dir", "C", ".", "Project directory")
	rootCmd.PersistentFlags().BoolVar(&g.verbose, "verbose", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(buildCmd(g))
	rootCmd.AddCommand(parseCmd(g))
	rootCmd.AddCommand(treeCmd(g))
	rootCmd.AddCommand(diffCmd(g))
	rootCmd.AddCommand(serveCmd(g))
	rootCmd.AddCommand(initCmd(g))

	return rootCmd
}

func setupLogLevel(verbose bool) error {
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	zerolog.SetGlobalLevel(level)
	return nil
}
