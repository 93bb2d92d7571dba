package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose bool
	workers int

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "fuser",
	Short: "fuser replays loop-nest transforms between fused tensors",
	Long: `fuser reads schedule files describing tensors, the split, merge and
reorder transforms applied to them, and compute-at requests. Each request
rebuilds the target tensor's loop nest from the reference tensor's history.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// newLogger builds a development logger at debug level when verbose, and a
// production logger otherwise.
func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config = zap.NewDevelopmentConfig()
	}
	return buildLogger(config)
}

func buildLogger(config zap.Config) (*zap.Logger, error) {
	l, err := config.Build()
	if err != nil {
		return nil, errors.Wrap(err, "initializing logger")
	}
	return l, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every replayed transform")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", 0, "Schedules replayed at once (default: one per CPU)")
}
