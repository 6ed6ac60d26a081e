package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"traceprep/internal/table"
	"traceprep/internal/transform"
)

var (
	splitInput   string
	splitOutput  string
	splitSeedVal int64
	splitPrefix  string
)

// splitCmd partitions a trace into cross-validation folds
var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Partition a trace CSV into cross-validation folds",
	Long: `Splits the input into 5 train/test fold pairs, written as
training_{i}.csv and test_{i}.csv in the output directory.

When the input has a query_id column, the unique query ids are shuffled
and divided into nearly-equal chunks; all rows of a query stay together
on one side of each fold. Without query_id the rows are chunked by
position in input order.

The shuffle is unseeded by default, so repeated runs produce different
splits; pass --seed for a reproducible split.

Example:
  traceprep split --input writes.csv --output folds/ --seed 42`,
	RunE: runSplit,
}

func init() {
	splitCmd.Flags().StringVar(&splitInput, "input", "", "Input trace CSV (required)")
	splitCmd.Flags().StringVar(&splitOutput, "output", "", "Output directory (required)")
	splitCmd.Flags().Int64Var(&splitSeedVal, "seed", 0, "Shuffle seed, 0 = unseeded")
	splitCmd.Flags().StringVar(&splitPrefix, "prefix", "", "Prefix for fold file names")
	splitCmd.MarkFlagRequired("input")
	splitCmd.MarkFlagRequired("output")
}

// runSplit executes the fold splitter
func runSplit(cmd *cobra.Command, args []string) error {
	seed := cfg.Split.Seed
	if cmd.Flags().Changed("seed") {
		seed = splitSeedVal
	}

	logger.Info("Splitting folds",
		zap.String("input", splitInput),
		zap.String("output", splitOutput),
		zap.Int("folds", cfg.Split.Folds),
		zap.Int64("seed", seed))

	in, err := table.ReadFile(splitInput)
	if err != nil {
		return err
	}

	folds, err := transform.Split(in, transform.SplitOptions{
		Folds: cfg.Split.Folds,
		Seed:  seed,
	})
	if err != nil {
		return fmt.Errorf("split failed: %w", err)
	}

	if err := os.MkdirAll(splitOutput, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := transform.WriteFolds(folds, splitOutput, splitPrefix); err != nil {
		return err
	}

	logger.Info("Split complete",
		zap.Int("rows", in.NumRows()),
		zap.Int("folds", len(folds)))
	return nil
}
