package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"pss/internal/model"
	"pss/internal/schedule"
)

func newShowCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(*configPath)
			if err != nil {
				return err
			}
			t, ok := s.store.Find(args[0])
			if !ok {
				return fmt.Errorf("%w: %q", schedule.ErrNotFound, args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, describe(t))
			if r, ok := t.(*model.Recurring); ok {
				for _, a := range r.AntiTasks() {
					fmt.Fprintln(out, "  "+describe(a))
				}
			}
			return nil
		},
	}
}

func newListCmd(configPath *string) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(*configPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			shown := 0
			for _, t := range s.store.Tasks() {
				if kind != "" && t.Kind().String() != kind {
					continue
				}
				fmt.Fprintln(out, describe(t))
				shown++
			}
			if shown == 0 {
				fmt.Fprintln(out, dim("no tasks"))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "Only list tasks of this kind (transient|recurring|anti)")
	return cmd
}
