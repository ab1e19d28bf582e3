package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/klokku/utilization/pkg/timesheet"
	"github.com/spf13/cobra"
)

var (
	flagInput     string
	flagCrosswalk string
	flagOutput    string
	flagHeaderRow int
)

var reshapeCmd = &cobra.Command{
	Use:   "reshape",
	Short: "Convert a Deltek timesheet CSV export into the daily report layout",
	RunE:  runReshape,
}

func init() {
	reshapeCmd.Flags().StringVarP(&flagInput, "input", "i", "", "Timesheet export (CSV)")
	reshapeCmd.Flags().StringVar(&flagCrosswalk, "crosswalk", "data/employee_crosswalk.csv", "Employee to user name crosswalk (CSV)")
	reshapeCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file, stdout when empty")
	reshapeCmd.Flags().IntVar(&flagHeaderRow, "header-row", timesheet.DefaultHeaderRow, "Preamble lines above the column header")
	_ = reshapeCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(reshapeCmd)
}

func runReshape(_ *cobra.Command, _ []string) error {
	input, err := os.Open(flagInput)
	if err != nil {
		return err
	}
	defer input.Close()

	crosswalk, err := os.Open(flagCrosswalk)
	if err != nil {
		return err
	}
	defer crosswalk.Close()

	var out io.Writer = os.Stdout
	if flagOutput != "" {
		f, err := os.Create(flagOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	result, err := timesheet.Reshape(input, crosswalk, out, timesheet.Options{HeaderRow: flagHeaderRow})
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "  Wrote %d rows for %d people\n", result.Rows, result.Employees)
	return nil
}
