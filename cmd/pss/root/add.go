package root

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"pss/internal/caltime"
	"pss/internal/model"
)

// taskFlags holds the task fields shared by add and edit.
type taskFlags struct {
	name      string
	category  string
	date      int
	start     float64
	duration  float64
	endDate   int
	frequency string
}

func (f *taskFlags) bindTiming(fs *pflag.FlagSet) {
	fs.IntVar(&f.date, "date", 0, "Date as YYYYMMDD (first occurrence for recurring tasks)")
	fs.Float64Var(&f.start, "start", 0, "Start time in hours, quarter-hour steps (e.g. 18.25)")
	fs.Float64Var(&f.duration, "duration", 1, "Duration in hours, quarter-hour steps")
}

func (f *taskFlags) bindRecurrence(fs *pflag.FlagSet) {
	fs.IntVar(&f.endDate, "end-date", 0, "Last possible date as YYYYMMDD")
	fs.StringVar(&f.frequency, "frequency", "daily", "Repeat frequency (daily|weekly)")
}

func (f *taskFlags) transient() (model.Task, error) {
	return model.NewTransient(f.name, f.category, f.date, f.start, f.duration)
}

func (f *taskFlags) recurring() (model.Task, error) {
	freq, err := model.ParseFrequency(f.frequency)
	if err != nil {
		return nil, err
	}
	return model.NewRecurring(f.name, f.category, f.date, f.start, f.duration, f.endDate, freq)
}

func (f *taskFlags) anti() (model.Task, error) {
	return model.NewAnti(f.name, f.date, f.start, f.duration)
}

func newAddCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a transient task, a recurring task or a cancellation",
	}
	cmd.AddCommand(
		newAddKindCmd(configPath, "transient", "Add a one-off task", (*taskFlags).transient),
		newAddKindCmd(configPath, "recurring", "Add a daily or weekly task", (*taskFlags).recurring),
		newAddKindCmd(configPath, "cancel", "Cancel one occurrence of a recurring task", (*taskFlags).anti),
	)
	return cmd
}

func newAddKindCmd(configPath *string, use, short string, build func(*taskFlags) (model.Task, error)) *cobra.Command {
	var f taskFlags

	cmd := &cobra.Command{
		Use:   use + " <name>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.name = args[0]
			if f.date == 0 {
				f.date = caltime.DateOf(now()).Int()
			}
			t, err := build(&f)
			if err != nil {
				return err
			}
			err = mutate(*configPath, func(s *session) error {
				return s.store.Add(t)
			})
			if err != nil {
				return err
			}

			msg := fmt.Sprintf("%s added %s %s", green(iconOK), t.Kind(), bold(t.Name()))
			if a, ok := t.(*model.Anti); ok {
				msg += " " + dim("cancelling "+a.Cancels())
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	f.bindTiming(cmd.Flags())
	switch use {
	case "transient":
		cmd.Flags().StringVarP(&f.category, "category", "c", model.TransientCategories[0], "Category label")
	case "recurring":
		cmd.Flags().StringVarP(&f.category, "category", "c", model.RecurringCategories[0], "Category label")
		f.bindRecurrence(cmd.Flags())
	}
	return cmd
}
