// Package conflict decides whether two tasks ever occupy the same instant.
package conflict

import (
	"time"

	"pss/internal/caltime"
	"pss/internal/model"
)

// Overlaps reports whether a and b share any instant. It is symmetric.
// Anti-tasks occupy no time, so any pair involving one never overlaps.
func Overlaps(a, b model.Task) bool {
	switch x := a.(type) {
	case *model.Transient:
		switch y := b.(type) {
		case *model.Transient:
			return intervalsOverlap(x.Start(), x.End(), y.Start(), y.End())
		case *model.Recurring:
			return diffOverlap(seriesOf(y), x.Start(), x.End())
		}
	case *model.Recurring:
		switch y := b.(type) {
		case *model.Transient:
			return diffOverlap(seriesOf(x), y.Start(), y.End())
		case *model.Recurring:
			return recurringOverlap(seriesOf(x), seriesOf(y))
		}
	}
	return false
}

// Reexposes reports whether r would overlap t if anti were unbound while
// every other cancellation of r stays in place.
func Reexposes(r *model.Recurring, anti *model.Anti, t *model.Transient) bool {
	s := seriesOf(r)
	kept := s.cancelled[:0:0]
	for _, d := range s.cancelled {
		if d != anti.StartDate() {
			kept = append(kept, d)
		}
	}
	s.cancelled = kept
	return diffOverlap(s, t.Start(), t.End())
}

// intervalsOverlap tests the half-open intervals [aStart, aEnd) and
// [bStart, bEnd).
func intervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !(!aEnd.After(bStart) || !aStart.Before(bEnd))
}

// series is an ephemeral view of a recurring task. Splitting around a
// cancellation only narrows first/last and filters cancelled; the stored
// task is never touched.
type series struct {
	first, last caltime.Date
	start       caltime.Hours
	dur         caltime.Hours
	step        int
	cancelled   []caltime.Date
}

func seriesOf(r *model.Recurring) series {
	s := series{
		first: r.StartDate(),
		last:  r.LastDate(),
		start: r.StartTime(),
		dur:   r.Duration(),
		step:  r.Frequency().Days(),
	}
	for _, a := range r.AntiTasks() {
		s.cancelled = append(s.cancelled, a.StartDate())
	}
	return s
}

func (s series) empty() bool { return s.first > s.last }

func (s series) firstStart() time.Time { return s.first.At(s.start) }

func (s series) lastEnd() time.Time {
	return caltime.AddDuration(s.last.At(s.start), s.dur)
}

func (s series) stride() time.Duration { return time.Duration(s.step) * 24 * time.Hour }

// brackets reports whether [from, to) touches the span between the first
// occurrence start and the last occurrence end.
func (s series) brackets(from, to time.Time) bool {
	return intervalsOverlap(s.firstStart(), s.lastEnd(), from, to)
}

// anchor moves [from, to) onto the cadence of s: it returns the earliest
// occurrence start intersecting [from, to), cancellations ignored.
func (s series) anchor(from, to time.Time) (time.Time, bool) {
	// an occurrence starting at o intersects iff from-dur < o < to
	lo := from.Add(-s.dur.Duration())
	occ := s.firstStart()
	if !occ.After(lo) {
		k := lo.Sub(occ)/s.stride() + 1
		occ = occ.Add(k * s.stride())
	}
	if caltime.DateOf(occ) > s.last || !occ.Before(to) {
		return time.Time{}, false
	}
	return occ, true
}

// split returns the parts of s strictly before and strictly after the
// occurrence on d. Each side keeps only the cancellations inside it.
func (s series) split(d caltime.Date) (left, right series) {
	left, right = s, s
	left.last = d.AddDays(-s.step)
	right.first = d.AddDays(s.step)
	left.cancelled, right.cancelled = nil, nil
	for _, c := range s.cancelled {
		switch {
		case c < d:
			left.cancelled = append(left.cancelled, c)
		case c > d:
			right.cancelled = append(right.cancelled, c)
		}
	}
	return left, right
}

// diffOverlap compares a recurring series with the transient interval
// [from, to). When an uncancelled-looking hit is found, the series is split
// around a cancellation and both sides are re-checked: if neither side
// conflicts, the only occurrence touched was the cancelled one. Any single
// split decides, so recursion depth is bounded by the cancellation count.
func diffOverlap(s series, from, to time.Time) bool {
	if s.empty() || !s.brackets(from, to) {
		return false
	}
	if _, ok := s.anchor(from, to); !ok {
		return false
	}
	if len(s.cancelled) == 0 {
		return true
	}
	left, right := s.split(s.cancelled[0])
	if !left.empty() && diffOverlap(left, from, to) {
		return true
	}
	return !right.empty() && diffOverlap(right, from, to)
}

// recurringOverlap compares two series, cancellations ignored. Every
// occurrence of the sparser series that falls inside the denser series'
// bracket is re-anchored onto the denser cadence. Daily against daily and
// weekly against weekly reduce to the same test with the weekday offset
// preserved; a daily task living entirely between two weekly occurrences
// produces no candidate and returns false.
func recurringOverlap(a, b series) bool {
	if !a.brackets(b.firstStart(), b.lastEnd()) {
		return false
	}
	sparse, dense := a, b
	if b.step > a.step {
		sparse, dense = b, a
	}
	occ, ok := sparse.anchor(dense.firstStart(), dense.lastEnd())
	for ok {
		if _, hit := dense.anchor(occ, caltime.AddDuration(occ, sparse.dur)); hit {
			return true
		}
		occ = occ.Add(sparse.stride())
		ok = caltime.DateOf(occ) <= sparse.last && occ.Before(dense.lastEnd())
	}
	return false
}
