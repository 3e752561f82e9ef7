package root

import (
	"fmt"

	"pss/internal/model"
)

// describe renders a task on one line for list and show.
func describe(t model.Task) string {
	when := fmt.Sprintf("%s %s +%s", t.StartDate(), t.StartTime(), t.Duration())
	switch x := t.(type) {
	case *model.Recurring:
		when = fmt.Sprintf("%s..%s %s %s +%s", x.StartDate(), x.EndDate(), x.Frequency(), x.StartTime(), x.Duration())
	case *model.Anti:
		when += " " + dim("cancels "+x.Cancels())
	}
	return fmt.Sprintf("%-20s %-12s %-10s %s", bold(t.Name()), cyan(t.Category()), t.Kind(), when)
}

func describeEvent(e model.Event) string {
	return fmt.Sprintf("%s %s-%s  %s %s",
		e.Date, e.Start().Format("15:04"), e.End().Format("15:04"), bold(e.Task.Name()), dim(e.Task.Category()))
}
