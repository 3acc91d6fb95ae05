package paceset

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/triathlon-pacer/pkg/cmd/util"
	"github.com/mpapenbr/triathlon-pacer/pkg/config"
	"github.com/mpapenbr/triathlon-pacer/pkg/pace"
	"github.com/mpapenbr/triathlon-pacer/pkg/paceset"
)

func newSaveCmd() *cobra.Command {
	var force bool
	formFlags := &util.FormFlags{}
	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "calculates a race form and saves it as pace set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := formFlags.Form()
			if err != nil {
				return err
			}
			svc, cleanup, err := util.NewPaceSetService(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()
			calc := pace.Calculate(form, config.FromFlags().PaceOptions()...)
			return savePaceSet(cmd, svc, args[0], calc, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false,
		"overwrite an existing pace set with the same name without asking")
	util.AddFormFlags(cmd, formFlags)
	return cmd
}

//nolint:whitespace // can't make both editor and linter happy
func savePaceSet(
	cmd *cobra.Command,
	svc *paceset.Service,
	name string,
	calc *pace.Calculation,
	force bool,
) error {
	if len(calc.Errors) > 0 {
		util.PrintAlert(cmd.ErrOrStderr(), paceset.SolverAlert(calc.Errors))
	}
	rec, err := paceset.FromCalculation(name, calc)
	if err != nil {
		return reportError(cmd, err, "save")
	}
	saved, err := svc.Save(cmd.Context(), rec, force)
	var conflict *paceset.ConflictError
	if errors.As(err, &conflict) {
		ok, cErr := util.Confirm(cmd.InOrStdin(), cmd.ErrOrStderr(),
			paceset.OverwriteAlert(conflict.Existing.Name))
		if cErr != nil {
			return cErr
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Not saved.")
			return nil
		}
		saved, err = svc.Save(cmd.Context(), rec, true)
	}
	if err != nil {
		return reportError(cmd, err, "save")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved pace set %q (%s) with total %s\n",
		saved.Name, saved.ID, saved.TotalTime)
	return nil
}

func reportError(cmd *cobra.Command, err error, operation string) error {
	if alert, ok := paceset.AlertFor(err, operation); ok {
		util.PrintAlert(cmd.ErrOrStderr(), alert)
	}
	return err
}
