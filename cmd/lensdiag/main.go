// Package main implements lensdiag, the command line driver of the lensing
// diagnostics pipeline.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/askiada/go-lensing/internal/config"
	"github.com/askiada/go-lensing/internal/logging"
)

var (
	// Global flags
	configPath string
	outdir     string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lensdiag",
	Short: "Lensing simulation diagnostics",
	Long: `lensdiag runs the diagnostics of an image simulation pipeline and applies
lensing shears to galaxy profiles.

The run configuration is a YAML file. LENSING_OUTDIR and LENSING_LOG_LEVEL
override its outdir and log level.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		if outdir != "" {
			cfg.RunOptions["outdir"] = outdir
		}

		if err := cfg.Validate(); err != nil {
			return errors.Wrapf(err, "invalid config %s", configPath)
		}

		logger, err = logging.New(logging.Options{
			Level:   cfg.Logging.Level,
			Format:  cfg.Logging.Format,
			Verbose: verbose,
		})
		if err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "lensing.yaml", "Run configuration file")
	rootCmd.PersistentFlags().StringVarP(&outdir, "outdir", "o", "", "Output directory, overrides run_options.outdir")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	lensCmd.Flags().StringVar(&truthOut, "truth-out", "", "Also write the lensed objects as a FITS truth table")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(lensCmd)
	rootCmd.AddCommand(typesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
