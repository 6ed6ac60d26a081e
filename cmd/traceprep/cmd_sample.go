package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"traceprep/internal/table"
	"traceprep/internal/transform"
)

var (
	sampleInput   string
	sampleOutput  string
	sampleRate    int
	sampleCount   int
	sampleSeedVal int64
)

// sampleCmd draws a reproducible random subset of a trace
var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Draw a reproducible random subset of a trace CSV",
	Long: `Samples rows uniformly at random without replacement. The draw is
seeded (default seed 1), so repeating a run over the same input produces
the same subset.

Exactly one of --rate and --samples must be given. The output file is
named after the input: {base}_{rate}.csv for a rate, {base}_n{count}.csv
for a fixed count.

Examples:
  traceprep sample --input trace.csv --output samples/ --rate 10
  traceprep sample --input trace.csv --output samples/ --samples 5000`,
	RunE: runSample,
}

func init() {
	sampleCmd.Flags().StringVar(&sampleInput, "input", "", "Input trace CSV (required)")
	sampleCmd.Flags().StringVar(&sampleOutput, "output", "", "Output directory (required)")
	sampleCmd.Flags().IntVar(&sampleRate, "rate", 0, "Sampling rate in percent, exclusive of 0 and 100")
	sampleCmd.Flags().IntVar(&sampleCount, "samples", 0, "Absolute number of rows to draw")
	sampleCmd.Flags().Int64Var(&sampleSeedVal, "seed", 0, "Random seed (default from config)")
	sampleCmd.MarkFlagRequired("input")
	sampleCmd.MarkFlagRequired("output")
	sampleCmd.MarkFlagsOneRequired("rate", "samples")
	sampleCmd.MarkFlagsMutuallyExclusive("rate", "samples")
}

// runSample executes the sampler
func runSample(cmd *cobra.Command, args []string) error {
	seed := cfg.Sample.Seed
	if cmd.Flags().Changed("seed") {
		seed = sampleSeedVal
	}

	logger.Info("Sampling trace",
		zap.String("input", sampleInput),
		zap.Int("rate", sampleRate),
		zap.Int("samples", sampleCount),
		zap.Int64("seed", seed))

	in, err := table.ReadFile(sampleInput)
	if err != nil {
		return err
	}

	out, err := transform.Sample(in, transform.SampleOptions{
		Rate:  sampleRate,
		Count: sampleCount,
		Seed:  seed,
	})
	if err != nil {
		return fmt.Errorf("sampling failed: %w", err)
	}

	if err := os.MkdirAll(sampleOutput, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(sampleOutput, sampleFileName(sampleInput, sampleRate, sampleCount))
	if err := table.WriteFile(out, path); err != nil {
		return err
	}

	logger.Info("Sample complete",
		zap.String("output", path),
		zap.Int("rows_in", in.NumRows()),
		zap.Int("rows_out", out.NumRows()))
	return nil
}

// sampleFileName derives the output name from the input file and the
// sampling parameters, e.g. trace.csv at rate 10 becomes trace_10.csv.
func sampleFileName(input string, rate, count int) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if rate != 0 {
		return fmt.Sprintf("%s_%d.csv", base, rate)
	}
	return fmt.Sprintf("%s_n%d.csv", base, count)
}
