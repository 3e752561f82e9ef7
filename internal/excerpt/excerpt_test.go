package excerpt

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pss/internal/caltime"
	"pss/internal/model"
	"pss/internal/schedule"
)

func sampleEvents(t *testing.T) []model.Event {
	t.Helper()
	s := schedule.New()
	r, err := model.NewRecurring("Class", "Class", 20240515, 18, 1.5, 20240615, model.Weekly)
	require.NoError(t, err)
	require.NoError(t, s.Add(r))
	tr, err := model.NewTransient("Dentist", "Appointment", 20240517, 9.25, 0.75)
	require.NoError(t, err)
	require.NoError(t, s.Add(tr))

	events, err := s.Events(20240515, 7)
	require.NoError(t, err)
	require.Len(t, events, 2)
	return events
}

func TestWindow(t *testing.T) {
	// 20240515 is a Wednesday.
	d := caltime.Date(20240515)

	start, days := Window(d, PeriodDay, time.Monday)
	assert.Equal(t, d, start)
	assert.Equal(t, 1, days)

	start, days = Window(d, PeriodWeek, time.Monday)
	assert.Equal(t, caltime.Date(20240513), start)
	assert.Equal(t, 7, days)

	start, _ = Window(d, PeriodWeek, time.Sunday)
	assert.Equal(t, caltime.Date(20240512), start)

	start, _ = Window(caltime.Date(20240512), PeriodWeek, time.Sunday)
	assert.Equal(t, caltime.Date(20240512), start)

	start, days = Window(d, PeriodMonth, time.Monday)
	assert.Equal(t, caltime.Date(20240501), start)
	assert.Equal(t, 31, days)

	_, days = Window(caltime.Date(20240229), PeriodMonth, time.Monday)
	assert.Equal(t, 29, days)
}

func TestParsePeriodAndFormat(t *testing.T) {
	p, err := ParsePeriod(" Week ")
	require.NoError(t, err)
	assert.Equal(t, PeriodWeek, p)
	_, err = ParsePeriod("year")
	assert.Error(t, err)

	f, err := ParseFormat("ICS")
	require.NoError(t, err)
	assert.Equal(t, FormatICS, f)
	_, err = ParseFormat("csv")
	assert.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleEvents(t)))
	assert.JSONEq(t, `[
		{"Name":"Class","Type":"Class","Date":20240515,"StartTime":18,"Duration":1.5},
		{"Name":"Dentist","Type":"Appointment","Date":20240517,"StartTime":9.25,"Duration":0.75}
	]`, buf.String())
}

func TestWriteICS(t *testing.T) {
	now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = time.Now })

	var buf bytes.Buffer
	require.NoError(t, WriteICS(&buf, sampleEvents(t)))

	cal, err := ical.ParseCalendar(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 2)

	first := events[0]
	assert.Equal(t, "Class", first.GetProperty(ical.ComponentPropertySummary).Value)
	assert.Equal(t, "20240515T180000", first.GetProperty(ical.ComponentPropertyDtStart).Value)
	assert.Equal(t, "20240515T193000", first.GetProperty(ical.ComponentPropertyDtEnd).Value)
	assert.Equal(t, "Class", first.GetProperty(ical.ComponentPropertyCategories).Value)

	second := events[1]
	assert.Equal(t, "20240517T091500", second.GetProperty(ical.ComponentPropertyDtStart).Value)
	assert.Equal(t, "20240517T100000", second.GetProperty(ical.ComponentPropertyDtEnd).Value)

	// UIDs are stable across writes and distinct per occurrence
	var again bytes.Buffer
	require.NoError(t, WriteICS(&again, sampleEvents(t)))
	assert.Equal(t, buf.String(), again.String())
	assert.NotEqual(t, first.Id(), second.Id())
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	events := sampleEvents(t)

	jsonPath := filepath.Join(dir, "week.json")
	require.NoError(t, Write(jsonPath, FormatJSON, events))
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Dentist"`)

	icsPath := filepath.Join(dir, "week.ics")
	require.NoError(t, Write(icsPath, FormatICS, events))
	data, err = os.ReadFile(icsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "BEGIN:VCALENDAR")

	assert.Error(t, Write(filepath.Join(dir, "x"), Format("csv"), events))
}
