package paceset

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/triathlon-pacer/pkg/cmd/util"
	"github.com/mpapenbr/triathlon-pacer/pkg/model"
	"github.com/mpapenbr/triathlon-pacer/pkg/paceset"
)

func newListCmd() *cobra.Command {
	var jsonPath string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "lists saved pace sets, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := util.NewPaceSetService(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()
			return listPaceSets(cmd, svc, jsonPath)
		},
	}
	cmd.Flags().StringVar(&jsonPath, "jsonpath", "",
		"select values by JSONPath expression, e.g. $[*].name")
	return cmd
}

func listPaceSets(cmd *cobra.Command, svc *paceset.Service, jsonPath string) error {
	sets, err := svc.List(cmd.Context())
	if err != nil {
		if alert, ok := paceset.AlertFor(err, "load"); ok {
			util.PrintAlert(cmd.ErrOrStderr(), alert)
		}
		return err
	}
	if jsonPath != "" {
		return util.WriteJSONPath(cmd.OutOrStdout(), sets, jsonPath)
	}
	return util.WriteOutput(cmd.OutOrStdout(), sets, func(w io.Writer) error {
		return writeTable(w, sets)
	})
}

func writeTable(w io.Writer, sets []model.PaceSet) error {
	if len(sets) == 0 {
		fmt.Fprintln(w, "No pace sets saved yet.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTOTAL\tSAVED")
	for i := range sets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			sets[i].ID, sets[i].Name, sets[i].TotalTime,
			sets[i].CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}
