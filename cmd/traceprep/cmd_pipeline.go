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
	pipelineInput    string
	pipelineOutput   string
	pipelineCollapse bool
	pipelineStrip    bool
	pipelineRate     int
	pipelineCount    int
	pipelineSeedVal  int64
)

// pipelineCmd chains filter, sample and split in one invocation
var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run filter, sample and split as one pass",
	Long: `Runs the full preparation sequence over a raw trace: write filter,
optional median collapse, optional subsampling, then the fold split.
Fold files are written with the configured pipeline prefix
(default pipeline_training_{i}.csv / pipeline_test_{i}.csv).

Sampling only happens when --rate or --samples is given.

Example:
  traceprep pipeline --input trace.csv --output folds/ --collapse --rate 10`,
	RunE: runPipeline,
}

func init() {
	pipelineCmd.Flags().StringVar(&pipelineInput, "input", "", "Input trace CSV (required)")
	pipelineCmd.Flags().StringVar(&pipelineOutput, "output", "", "Output directory (required)")
	pipelineCmd.Flags().BoolVar(&pipelineCollapse, "collapse", false, "Collapse duplicate keys by median")
	pipelineCmd.Flags().BoolVar(&pipelineStrip, "strip", false, "Drop the query_id column after filtering")
	pipelineCmd.Flags().IntVar(&pipelineRate, "rate", 0, "Sampling rate in percent, exclusive of 0 and 100")
	pipelineCmd.Flags().IntVar(&pipelineCount, "samples", 0, "Absolute number of rows to draw")
	pipelineCmd.Flags().Int64Var(&pipelineSeedVal, "seed", 0, "Fold shuffle seed, 0 = unseeded")
	pipelineCmd.MarkFlagRequired("input")
	pipelineCmd.MarkFlagRequired("output")
	pipelineCmd.MarkFlagsMutuallyExclusive("rate", "samples")
}

// runPipeline executes filter -> collapse -> sample -> split
func runPipeline(cmd *cobra.Command, args []string) error {
	splitSeed := cfg.Split.Seed
	if cmd.Flags().Changed("seed") {
		splitSeed = pipelineSeedVal
	}

	logger.Info("Running pipeline",
		zap.String("input", pipelineInput),
		zap.String("output", pipelineOutput),
		zap.Bool("collapse", pipelineCollapse),
		zap.Int("rate", pipelineRate),
		zap.Int("samples", pipelineCount))

	t, err := table.ReadFile(pipelineInput)
	if err != nil {
		return err
	}
	rowsIn := t.NumRows()

	t, err = transform.FilterWrites(t, transform.FilterOptions{
		WriteOp:      cfg.Filter.WriteOp,
		StripQueryID: pipelineStrip || cfg.Filter.StripQueryID,
	})
	if err != nil {
		return fmt.Errorf("filter failed: %w", err)
	}

	if pipelineCollapse {
		t, err = transform.CollapseMedians(t)
		if err != nil {
			return fmt.Errorf("median collapse failed: %w", err)
		}
	}

	if pipelineRate != 0 || pipelineCount != 0 {
		t, err = transform.Sample(t, transform.SampleOptions{
			Rate:  pipelineRate,
			Count: pipelineCount,
			Seed:  cfg.Sample.Seed,
		})
		if err != nil {
			return fmt.Errorf("sampling failed: %w", err)
		}
	}

	folds, err := transform.Split(t, transform.SplitOptions{
		Folds: cfg.Split.Folds,
		Seed:  splitSeed,
	})
	if err != nil {
		return fmt.Errorf("split failed: %w", err)
	}

	if err := os.MkdirAll(pipelineOutput, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := transform.WriteFolds(folds, pipelineOutput, cfg.Split.PipelinePrefix); err != nil {
		return err
	}

	logger.Info("Pipeline complete",
		zap.Int("rows_in", rowsIn),
		zap.Int("rows_split", t.NumRows()),
		zap.Int("folds", len(folds)))
	return nil
}
