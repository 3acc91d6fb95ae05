package paceset

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/triathlon-pacer/pkg/cmd/calc"
	"github.com/mpapenbr/triathlon-pacer/pkg/cmd/util"
	"github.com/mpapenbr/triathlon-pacer/pkg/model"
	"github.com/mpapenbr/triathlon-pacer/pkg/pace"
	"github.com/mpapenbr/triathlon-pacer/pkg/paceset"
)

func newShowCmd() *cobra.Command {
	var byName bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "shows a saved pace set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := util.NewPaceSetService(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()
			return showPaceSet(cmd, svc, args[0], byName)
		},
	}
	cmd.Flags().BoolVar(&byName, "name", false, "lookup by name instead of id")
	return cmd
}

func showPaceSet(cmd *cobra.Command, svc *paceset.Service, arg string, byName bool) error {
	var ps *model.PaceSet
	var err error
	if byName {
		ps, err = svc.FindByName(cmd.Context(), arg)
	} else {
		ps, err = svc.Get(cmd.Context(), arg)
	}
	if err != nil {
		if alert, ok := paceset.AlertFor(err, "load"); ok {
			util.PrintAlert(cmd.ErrOrStderr(), alert)
		}
		return err
	}
	return util.WriteOutput(cmd.OutOrStdout(), ps, func(w io.Writer) error {
		fmt.Fprintf(w, "%s (%s)\n", ps.Name, ps.ID)
		finish, _ := pace.FinishTime(ps.StartTime, ps.TotalSeconds)
		return calc.WriteCalculation(w, &pace.Calculation{
			Form:       ps.Form(),
			Total:      pace.Total{Seconds: ps.TotalSeconds, Display: ps.TotalTime},
			FinishTime: finish,
		})
	})
}
