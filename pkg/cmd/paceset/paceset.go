package paceset

import (
	"github.com/spf13/cobra"
)

func NewPaceSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "paceset",
		Aliases: []string{"ps"},
		Short:   "manages saved pace sets",
	}
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newSaveCmd())
	cmd.AddCommand(newDeleteCmd())
	return cmd
}
