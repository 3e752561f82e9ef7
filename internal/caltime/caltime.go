// Package caltime converts between YYYYMMDD calendar dates, quarter-hour
// quantized times of day and absolute instants.
//
// All instants are naive: they are expressed in UTC purely so that day
// arithmetic never meets a DST transition. No time zone is implied.
package caltime

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrMalformedDate is returned for values that are not an 8-digit
	// YYYYMMDD integer naming a real calendar day.
	ErrMalformedDate = errors.New("malformed date")
	// ErrInvalidTime is returned for start times or durations that are out of
	// range or not an exact multiple of a quarter hour.
	ErrInvalidTime = errors.New("invalid time")
)

const (
	MaxStartTime Hours = 23.75
	MinDuration  Hours = 0.25
	MaxDuration  Hours = 23.75

	day = 24 * time.Hour
)

// quarterMinutes maps the fractional part of an Hours value to minutes.
var quarterMinutes = map[float64]int{0.00: 0, 0.25: 15, 0.50: 30, 0.75: 45}

// Date is a calendar day encoded as YYYYMMDD. Values obtained from ParseDate
// or DateOf are always valid.
type Date int

// ParseDate validates d as an 8-digit YYYYMMDD calendar date.
func ParseDate(d int) (Date, error) {
	if d < 10000000 || d > 99999999 {
		return 0, fmt.Errorf("%w: %d is not 8 digits", ErrMalformedDate, d)
	}
	y, m, dd := d/10000, time.Month(d/100%100), d%100
	t := time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || t.Month() != m || t.Day() != dd {
		return 0, fmt.Errorf("%w: %d is not a calendar day", ErrMalformedDate, d)
	}
	return Date(d), nil
}

// DateOf returns the calendar day of t.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date(y*10000 + int(m)*100 + d)
}

// Time returns midnight of d.
func (d Date) Time() time.Time {
	n := int(d)
	return time.Date(n/10000, time.Month(n/100%100), n%100, 0, 0, 0, 0, time.UTC)
}

// At combines d with a time of day into a single orderable instant.
func (d Date) At(tod Hours) time.Time {
	return d.Time().Add(tod.Duration())
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Weekday returns the day of week, 0 (Sunday) through 6.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// DaysUntil returns the signed number of days from d to other.
func (d Date) DaysUntil(other Date) int {
	return int(other.Time().Sub(d.Time()) / day)
}

func (d Date) Int() int { return int(d) }

func (d Date) String() string {
	return d.Time().Format("2006-01-02")
}

// Hours is a time of day or a duration in fractional hours.
type Hours float64

// Quarters returns h as a count of quarter hours and whether h is an exact
// multiple of a quarter hour.
func (h Hours) Quarters() (int, bool) {
	q := float64(h) * 4
	if math.IsNaN(q) || math.IsInf(q, 0) || q != math.Trunc(q) {
		return 0, false
	}
	return int(q), true
}

// Minutes converts h to whole minutes. h must be quarter-hour quantized.
func (h Hours) Minutes() int {
	whole := math.Trunc(float64(h))
	return int(whole)*60 + quarterMinutes[float64(h)-whole]
}

func (h Hours) Duration() time.Duration {
	return time.Duration(h.Minutes()) * time.Minute
}

func (h Hours) String() string {
	m := h.Minutes()
	return fmt.Sprintf("%d:%02d", m/60, m%60)
}

// HoursOf returns the time of day of t as Hours, truncated to a quarter hour.
func HoursOf(t time.Time) Hours {
	return Hours(float64(t.Hour()) + float64(t.Minute()/15)*0.25)
}

// ValidateStartTime checks that h is a quarter-hour time of day in [0, 23.75].
func ValidateStartTime(h Hours) error {
	if _, ok := h.Quarters(); !ok {
		return fmt.Errorf("%w: start time %v is not a multiple of 0.25", ErrInvalidTime, float64(h))
	}
	if h < 0 || h > MaxStartTime {
		return fmt.Errorf("%w: start time %v must be between 0 and %v", ErrInvalidTime, float64(h), float64(MaxStartTime))
	}
	return nil
}

// ValidateDuration checks that h is a quarter-hour duration in [0.25, 23.75].
func ValidateDuration(h Hours) error {
	if _, ok := h.Quarters(); !ok {
		return fmt.Errorf("%w: duration %v is not a multiple of 0.25", ErrInvalidTime, float64(h))
	}
	if h < MinDuration || h > MaxDuration {
		return fmt.Errorf("%w: duration %v must be between %v and %v", ErrInvalidTime, float64(h), float64(MinDuration), float64(MaxDuration))
	}
	return nil
}

// AddDuration returns t+dur. The result may fall on a later day.
func AddDuration(t time.Time, dur Hours) time.Time {
	return t.Add(dur.Duration())
}
