package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"pss/internal/model"
	"pss/internal/schedule"
)

func newEditCmd(configPath *string) *cobra.Command {
	var f taskFlags

	cmd := &cobra.Command{
		Use:   "edit <name>",
		Short: "Replace a task; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			changed := cmd.Flags().Changed
			err := mutate(*configPath, func(s *session) error {
				old, ok := s.store.Find(name)
				if !ok {
					return fmt.Errorf("%w: %q", schedule.ErrNotFound, name)
				}
				replacement, err := f.overlay(old, changed)
				if err != nil {
					return err
				}
				return s.store.Edit(name, replacement)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s edited %s\n", green(iconOK), bold(name))
			return nil
		},
	}

	cmd.Flags().StringVar(&f.name, "name", "", "New name")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "Category label (not for cancellations)")
	f.bindTiming(cmd.Flags())
	f.bindRecurrence(cmd.Flags())
	return cmd
}

// overlay builds a task of old's kind from old's fields, replaced by every
// flag the user set.
func (f *taskFlags) overlay(old model.Task, changed func(string) bool) (model.Task, error) {
	merged := taskFlags{
		name:     old.Name(),
		category: old.Category(),
		date:     old.StartDate().Int(),
		start:    float64(old.StartTime()),
		duration: float64(old.Duration()),
	}
	if r, ok := old.(*model.Recurring); ok {
		merged.endDate = r.EndDate().Int()
		merged.frequency = r.Frequency().String()
	}

	if changed("name") {
		merged.name = f.name
	}
	if changed("category") {
		merged.category = f.category
	}
	if changed("date") {
		merged.date = f.date
	}
	if changed("start") {
		merged.start = f.start
	}
	if changed("duration") {
		merged.duration = f.duration
	}
	if changed("end-date") {
		merged.endDate = f.endDate
	}
	if changed("frequency") {
		merged.frequency = f.frequency
	}

	switch old.Kind() {
	case model.KindRecurring:
		return merged.recurring()
	case model.KindAnti:
		return merged.anti()
	default:
		return merged.transient()
	}
}
