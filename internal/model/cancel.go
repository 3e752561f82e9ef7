package model

import (
	"errors"
	"fmt"
)

// ErrNoMatchingOccurrence is returned when an anti-task does not line up with
// any occurrence of any recurring task.
var ErrNoMatchingOccurrence = errors.New("no matching occurrence")

// Matches reports whether a cancels a real, not yet cancelled occurrence of r:
// same start time and duration, a date inside [start date, end date] and, for
// weekly tasks, the same weekday as the start date.
func Matches(a *Anti, r *Recurring) bool {
	if a.startDate < r.startDate || a.startDate > r.endDate {
		return false
	}
	if a.startTime != r.startTime || a.duration != r.duration {
		return false
	}
	if r.frequency == Weekly && a.startDate.Weekday() != r.startDate.Weekday() {
		return false
	}
	for _, existing := range r.antis {
		if existing.startDate == a.startDate {
			return false
		}
	}
	return true
}

// TryBind binds a to r if it matches. On success r owns a and a refers back
// to r by name.
func TryBind(a *Anti, r *Recurring) bool {
	if !Matches(a, r) {
		return false
	}
	r.antis = append(r.antis, a)
	a.cancels = r.name
	return true
}

// BindFirstMatch binds a to the first recurring task, in the given order,
// that accepts it.
func BindFirstMatch(a *Anti, recs []*Recurring) (*Recurring, error) {
	for _, r := range recs {
		if TryBind(a, r) {
			return r, nil
		}
	}
	return nil, fmt.Errorf("anti-task %q on %s at %s: %w", a.name, a.startDate, a.startTime, ErrNoMatchingOccurrence)
}
