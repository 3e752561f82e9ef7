package root

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a task; deleting a recurring task also drops its cancellations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := mutate(*configPath, func(s *session) error {
				return s.store.Delete(args[0])
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s deleted %s\n", green(iconOK), bold(args[0]))
			return nil
		},
	}
}
