package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/klokku/utilization/pkg/utilization"
	"github.com/spf13/cobra"
)

var (
	flagPerson     string
	flagMethod     string
	flagBySemester bool
	flagTarget     float64
	flagBreakdown  bool
	flagCsv        bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the utilization report of one person",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&flagPerson, "person", "p", "", "User name as it appears in the time entries")
	reportCmd.Flags().StringVarP(&flagMethod, "method", "m", "", "Projection method: month_to_date, last_month or year_to_date")
	reportCmd.Flags().BoolVarP(&flagBySemester, "by-semester", "s", false, "Scope year to date figures to the current semester")
	reportCmd.Flags().Float64VarP(&flagTarget, "target", "t", 0, "Target utilization in percent")
	reportCmd.Flags().BoolVar(&flagBreakdown, "breakdown", false, "Show the category breakdown instead of the projection")
	reportCmd.Flags().BoolVar(&flagCsv, "csv", false, "Print CSV instead of a table")
	_ = reportCmd.MarkFlagRequired("person")
	reportCmd.MarkFlagsMutuallyExclusive("breakdown", "csv")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	if flagTarget < 0 || flagTarget > 100 {
		return errors.New("target must be a percentage between 0 and 100")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	application, err := openApplication(ctx)
	if err != nil {
		return err
	}
	defer application.Close()

	params := application.Deps.UtilizationDefaults
	params.Person = flagPerson
	params.Target = flagTarget
	if cmd.Flags().Changed("method") {
		if params.Method, err = utilization.ParseMethod(flagMethod); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("by-semester") {
		params.BySemester = flagBySemester
	}

	service := application.Deps.UtilizationService
	renderer := utilization.NewTerminalRenderer()
	var out string
	switch {
	case flagBreakdown:
		breakdown, err := service.Breakdown(ctx, params)
		if err != nil {
			return err
		}
		out, err = renderer.RenderBreakdown(breakdown)
		if err != nil {
			return err
		}
	case flagCsv:
		result, err := service.Report(ctx, params)
		if err != nil {
			return err
		}
		out, err = application.Deps.CsvRenderer.RenderReport(result)
		if err != nil {
			return err
		}
	default:
		result, err := service.Report(ctx, params)
		if err != nil {
			return err
		}
		out, err = renderer.RenderReport(result)
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprint(os.Stdout, out)
	return err
}
