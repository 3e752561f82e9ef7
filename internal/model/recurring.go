package model

import (
	"fmt"
	"strings"
	"time"

	"pss/internal/caltime"
)

// Frequency is the number of days between two occurrences.
type Frequency int

const (
	Daily  Frequency = 1
	Weekly Frequency = 7
)

// ParseFrequency accepts "daily"/"weekly" or the wire values "1"/"7".
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "1":
		return Daily, nil
	case "weekly", "7":
		return Weekly, nil
	}
	return 0, fmt.Errorf("%w: unknown frequency %q", ErrInvalidTask, s)
}

func (f Frequency) Valid() bool { return f == Daily || f == Weekly }

func (f Frequency) Days() int { return int(f) }

func (f Frequency) String() string {
	switch f {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	default:
		return fmt.Sprintf("every %d days", int(f))
	}
}

// Recurring repeats every Frequency days from its start date up to and
// including the last occurrence on or before its end date.
type Recurring struct {
	base
	endDate   caltime.Date
	frequency Frequency
	antis     []*Anti
}

func NewRecurring(name, category string, startDate int, start, dur float64, endDate int, freq Frequency) (*Recurring, error) {
	if category == CancellationCategory {
		return nil, fmt.Errorf("recurring %q: %w: category %q is reserved for anti-tasks", name, ErrInvalidTask, category)
	}
	b, err := newBase(name, category, startDate, start, dur)
	if err != nil {
		return nil, fmt.Errorf("recurring %q: %w", name, err)
	}
	end, err := caltime.ParseDate(endDate)
	if err != nil {
		return nil, fmt.Errorf("recurring %q: end date: %w", name, err)
	}
	if end < b.startDate {
		return nil, fmt.Errorf("recurring %q: %w: end date %d is before start date %d", name, ErrInvalidTask, endDate, startDate)
	}
	if !freq.Valid() {
		return nil, fmt.Errorf("recurring %q: %w: frequency must be 1 or 7, got %d", name, ErrInvalidTask, int(freq))
	}
	return &Recurring{base: b, endDate: end, frequency: freq}, nil
}

func (r *Recurring) Kind() Kind { return KindRecurring }

func (r *Recurring) EndDate() caltime.Date { return r.endDate }

func (r *Recurring) Frequency() Frequency { return r.frequency }

// AntiTasks returns the bound anti-tasks in binding order.
func (r *Recurring) AntiTasks() []*Anti {
	out := make([]*Anti, len(r.antis))
	copy(out, r.antis)
	return out
}

// LastDate is the date of the final occurrence. For weekly tasks it is the
// latest date on or before the end date that shares the start weekday.
func (r *Recurring) LastDate() caltime.Date {
	last := r.endDate
	if r.frequency == Weekly {
		for last.Weekday() != r.startDate.Weekday() {
			last = last.AddDays(-1)
		}
	}
	return last
}

// LastStart is the start instant of the final occurrence.
func (r *Recurring) LastStart() time.Time { return r.LastDate().At(r.startTime) }

// LastEnd is the exclusive end of the final occurrence.
func (r *Recurring) LastEnd() time.Time { return caltime.AddDuration(r.LastStart(), r.duration) }

// OccursOn reports whether an occurrence starts on d.
func (r *Recurring) OccursOn(d caltime.Date) bool {
	if d < r.startDate || d > r.LastDate() {
		return false
	}
	return r.startDate.DaysUntil(d)%r.frequency.Days() == 0
}

// Clone returns a copy owning fresh copies of the bound anti-tasks.
func (r *Recurring) Clone() *Recurring {
	c := *r
	c.antis = make([]*Anti, len(r.antis))
	for i, a := range r.antis {
		ac := *a
		c.antis[i] = &ac
	}
	return &c
}

// Release detaches the named anti-task and reports whether it was bound.
func (r *Recurring) Release(name string) (*Anti, bool) {
	for i, a := range r.antis {
		if a.name == name {
			r.antis = append(r.antis[:i:i], r.antis[i+1:]...)
			a.cancels = ""
			return a, true
		}
	}
	return nil, false
}
