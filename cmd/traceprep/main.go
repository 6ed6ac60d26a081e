package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"traceprep/internal/config"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Logger, tagged with a per-run correlation ID
	logger *zap.Logger

	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "traceprep",
	Short: "traceprep - operating-unit trace preparation for model training",
	Long: `traceprep turns raw operating-unit trace CSVs into training data.

Each subcommand is a one-shot batch transformation over a CSV file:
  filter    keep write operations, optionally collapsing duplicate keys by median
  sample    draw a reproducible random subset of rows
  split     partition a trace into cross-validation folds
  pipeline  run filter, sample and split in sequence`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		built, err := zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = built.With(zap.String("run_id", uuid.NewString()))

		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
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
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a traceprep config yaml")

	// Add commands to root
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(pipelineCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
