package calc

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/triathlon-pacer/pkg/cmd/util"
	"github.com/mpapenbr/triathlon-pacer/pkg/config"
	"github.com/mpapenbr/triathlon-pacer/pkg/model"
	"github.com/mpapenbr/triathlon-pacer/pkg/pace"
	"github.com/mpapenbr/triathlon-pacer/pkg/paceset"
)

func NewCalcCmd() *cobra.Command {
	formFlags := &util.FormFlags{}
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "calculates the missing values and the total time of a race",
		Example: `  tpc calc --swim-distance 1500 --swim-pace 1:40 --t1 2:00 \
    --bike-distance 40000 --bike-time 1:05:00 --t2 1:30 \
    --run-distance 10000 --run-time 50:00 --start-time 07:00`,
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := formFlags.Form()
			if err != nil {
				return err
			}
			calc := pace.Calculate(form, config.FromFlags().PaceOptions()...)
			return WriteCalculation(cmd.OutOrStdout(), calc)
		},
	}
	util.AddFormFlags(cmd, formFlags)
	return cmd
}

// WriteCalculation prints calc in the configured output format
func WriteCalculation(w io.Writer, calc *pace.Calculation) error {
	return util.WriteOutput(w, calc, func(w io.Writer) error {
		return writeText(w, calc)
	})
}

func writeText(w io.Writer, calc *pace.Calculation) error {
	if len(calc.Errors) > 0 {
		util.PrintAlert(w, paceset.SolverAlert(calc.Errors))
	}
	writeDiscipline(w, model.Swim, calc.Form.Swim, "pace/100m")
	fmt.Fprintf(w, "%-6s %s\n", "T1", calc.Form.T1.Time)
	writeDiscipline(w, model.Bike, calc.Form.Bike, "km/h")
	fmt.Fprintf(w, "%-6s %s\n", "T2", calc.Form.T2.Time)
	writeDiscipline(w, model.Run, calc.Form.Run, "pace/km")
	if !calc.Total.Computed() {
		fmt.Fprintln(w, "Total  -")
		return nil
	}
	fmt.Fprintf(w, "%-6s %s\n", "Total", calc.Total.Display)
	if calc.FinishTime != "" {
		fmt.Fprintf(w, "%-6s %s (start %s)\n", "Finish", calc.FinishTime, calc.Form.StartTime)
	}
	return nil
}

func writeDiscipline(w io.Writer, d model.Discipline, t model.DisciplineText, unit string) {
	fmt.Fprintf(w, "%-6s %8s m  %8s  %8s %s\n",
		d.Label(), t.Distance, t.Time, t.PaceOrSpeed, unit)
}
