package root

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pss/internal/caltime"
	"pss/internal/excerpt"
)

// now is the clock used for date defaults; tests pin it.
var now = time.Now

// dateFlagOrToday validates a YYYYMMDD flag value, 0 meaning today.
func dateFlagOrToday(v int) (caltime.Date, error) {
	if v == 0 {
		return caltime.DateOf(now()), nil
	}
	return caltime.ParseDate(v)
}

func newEventsCmd(configPath *string) *cobra.Command {
	var (
		from   int
		days   int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List concrete occurrences in a window of days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(*configPath)
			if err != nil {
				return err
			}
			start, err := dateFlagOrToday(from)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("days") {
				days = s.cfg.HorizonDays
			}

			events, err := s.store.Events(start, days)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return excerpt.WriteJSON(out, events)
			}
			if len(events) == 0 {
				fmt.Fprintln(out, dim("no events"))
				return nil
			}
			for _, e := range events {
				fmt.Fprintln(out, describeEvent(e))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&from, "from", 0, "First date as YYYYMMDD (default today)")
	cmd.Flags().IntVar(&days, "days", 0, "Number of days (default horizon_days from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print event records as JSON")
	return cmd
}
