package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pss/internal/fsutil"
)

func newImportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Add every task of a JSON task file, or none if any is rejected",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var total int
			err = mutate(*configPath, func(s *session) error {
				if err := s.store.Load(data); err != nil {
					return err
				}
				total = s.store.Len()
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s imported %s %s\n", green(iconOK), args[0], dim(fmt.Sprintf("(%d tasks in schedule)", total)))
			return nil
		},
	}
}

func newExportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file|->",
		Short: "Write every task to a JSON task file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(*configPath)
			if err != nil {
				return err
			}
			data, err := s.store.Dump()
			if err != nil {
				return err
			}

			if args[0] == "-" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := fsutil.WriteFileAtomic(args[0], data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s exported %d tasks to %s\n", green(iconOK), s.store.Len(), args[0])
			return nil
		},
	}
}
