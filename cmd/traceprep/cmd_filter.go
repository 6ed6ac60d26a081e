package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"traceprep/internal/table"
	"traceprep/internal/transform"
)

var (
	filterInput    string
	filterOutput   string
	filterCollapse bool
	filterStrip    bool
)

// filterCmd keeps the write operations of a trace
var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Keep write operations from a trace CSV",
	Long: `Reads a trace CSV, keeps only the rows whose op_unit marks a write,
and drops the op_unit column from the output. Rows carrying the -1
"no associated query" sentinel are removed whenever a query_id column
is present.

With --collapse, rows sharing the same first two columns are merged into
one row holding the element-wise median of the remaining columns.
With --strip, the query_id column itself is dropped from the output.

Example:
  traceprep filter --input trace.csv --output writes.csv --collapse`,
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().StringVar(&filterInput, "input", "", "Input trace CSV (required)")
	filterCmd.Flags().StringVar(&filterOutput, "output", "", "Output CSV (required)")
	filterCmd.Flags().BoolVar(&filterCollapse, "collapse", false, "Collapse duplicate keys by median")
	filterCmd.Flags().BoolVar(&filterStrip, "strip", false, "Drop the query_id column")
	filterCmd.MarkFlagRequired("input")
	filterCmd.MarkFlagRequired("output")
}

// runFilter executes the write filter, optionally followed by median collapse
func runFilter(cmd *cobra.Command, args []string) error {
	logger.Info("Filtering writes",
		zap.String("input", filterInput),
		zap.String("output", filterOutput),
		zap.Bool("collapse", filterCollapse),
		zap.Bool("strip", filterStrip))

	in, err := table.ReadFile(filterInput)
	if err != nil {
		return err
	}

	out, err := transform.FilterWrites(in, transform.FilterOptions{
		WriteOp:      cfg.Filter.WriteOp,
		StripQueryID: filterStrip || cfg.Filter.StripQueryID,
	})
	if err != nil {
		return fmt.Errorf("filter failed: %w", err)
	}

	if filterCollapse {
		out, err = transform.CollapseMedians(out)
		if err != nil {
			return fmt.Errorf("median collapse failed: %w", err)
		}
	}

	if err := table.WriteFile(out, filterOutput); err != nil {
		return err
	}

	logger.Info("Filter complete",
		zap.Int("rows_in", in.NumRows()),
		zap.Int("rows_out", out.NumRows()))
	return nil
}
