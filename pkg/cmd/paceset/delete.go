package paceset

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/triathlon-pacer/pkg/cmd/util"
	"github.com/mpapenbr/triathlon-pacer/pkg/paceset"
)

func newDeleteCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "deletes a saved pace set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := util.NewPaceSetService(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()
			return deletePaceSet(cmd, svc, args[0], force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "delete without asking")
	return cmd
}

func deletePaceSet(cmd *cobra.Command, svc *paceset.Service, id string, force bool) error {
	ps, err := svc.Get(cmd.Context(), id)
	if err != nil {
		return reportError(cmd, err, "load")
	}
	if !force {
		ok, cErr := util.Confirm(cmd.InOrStdin(), cmd.ErrOrStderr(),
			paceset.DeleteAlert(ps.Name))
		if cErr != nil {
			return cErr
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Not deleted.")
			return nil
		}
	}
	if err := svc.Delete(cmd.Context(), id); err != nil {
		return reportError(cmd, err, "delete")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted pace set %q\n", ps.Name)
	return nil
}
