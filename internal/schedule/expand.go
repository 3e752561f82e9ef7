package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	"pss/internal/caltime"
	"pss/internal/model"
)

// Events expands every task into concrete occurrences intersecting the
// window [start 00:00, start+days-1 23:45]. Occurrences cancelled by an
// anti-task with exactly the same start instant are left out. The result
// is sorted by start instant; ties keep discovery order.
func (s *Store) Events(start caltime.Date, days int) ([]model.Event, error) {
	if days < 1 {
		return nil, fmt.Errorf("%w: day count %d must be at least 1", ErrInvalidWindow, days)
	}
	rangeStart := start.At(0)
	rangeEnd := start.AddDays(days - 1).At(caltime.MaxStartTime)

	events := make([]model.Event, 0)
	for _, t := range s.tasks {
		switch x := t.(type) {
		case *model.Transient:
			if !x.Start().After(rangeEnd) && x.End().After(rangeStart) {
				events = append(events, eventOf(x, x.StartDate()))
			}
		case *model.Recurring:
			occ, err := expandRecurring(x, rangeStart, rangeEnd)
			if err != nil {
				return nil, err
			}
			events = append(events, occ...)
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start().Before(events[j].Start())
	})
	return events, nil
}

// expandRecurring turns r into an RRULE set with one EXDATE per anti-task
// and collects the occurrences that intersect [rangeStart, rangeEnd].
func expandRecurring(r *model.Recurring, rangeStart, rangeEnd time.Time) ([]model.Event, error) {
	freq := rrule.DAILY
	if r.Frequency() == model.Weekly {
		freq = rrule.WEEKLY
	}
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:     freq,
		Interval: 1,
		Dtstart:  r.Start(),
		Until:    r.LastStart(),
	})
	if err != nil {
		return nil, fmt.Errorf("expand %q: %w", r.Name(), err)
	}

	var set rrule.Set
	set.RRule(rule)
	for _, a := range r.AntiTasks() {
		set.ExDate(a.Start())
	}

	// An occurrence starting up to one duration before the window still
	// reaches into it.
	dur := r.Duration().Duration()
	starts := set.Between(rangeStart.Add(-dur), rangeEnd, true)

	out := make([]model.Event, 0, len(starts))
	for _, occStart := range starts {
		if !occStart.Add(dur).After(rangeStart) {
			continue
		}
		out = append(out, eventOf(r, caltime.DateOf(occStart)))
	}
	return out, nil
}

func eventOf(t model.Task, date caltime.Date) model.Event {
	return model.Event{
		Date:      date,
		StartTime: t.StartTime(),
		Duration:  t.Duration(),
		Task:      t,
	}
}
