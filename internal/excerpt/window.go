// Package excerpt writes the events of a day, week or month to a file as
// JSON task records or as an iCalendar feed.
package excerpt

import (
	"fmt"
	"strings"
	"time"

	"pss/internal/caltime"
)

type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return p, nil
	}
	return "", fmt.Errorf("unknown period %q (want day, week or month)", s)
}

// Window returns the first date and day count of the period containing
// date. Weeks begin on firstDay; months are calendar months.
func Window(date caltime.Date, p Period, firstDay time.Weekday) (caltime.Date, int) {
	switch p {
	case PeriodWeek:
		back := (int(date.Weekday()) - int(firstDay) + 7) % 7
		return date.AddDays(-back), 7
	case PeriodMonth:
		t := date.Time()
		first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		start := caltime.DateOf(first)
		return start, start.DaysUntil(caltime.DateOf(first.AddDate(0, 1, 0)))
	default:
		return date, 1
	}
}
