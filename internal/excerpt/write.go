package excerpt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"pss/internal/fsutil"
	appLog "pss/internal/log"
	"pss/internal/model"
	"pss/internal/schedule"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatICS  Format = "ics"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatICS:
		return f, nil
	}
	return "", fmt.Errorf("unknown excerpt format %q (want json or ics)", s)
}

// floating is the iCalendar DATE-TIME form without a zone suffix; event
// instants carry no time zone.
const floating = "20060102T150405"

const productID = "-//pss//personal schedule//EN"

// uidSpace namespaces occurrence UIDs so the same occurrence always gets
// the same UID across writes.
var uidSpace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("pss.local"))

// now stamps DTSTAMP; tests pin it.
var now = time.Now

// WriteJSON writes events as an indented array of task records.
func WriteJSON(w io.Writer, events []model.Event) error {
	records := make([]any, 0, len(events))
	for _, e := range events {
		records = append(records, schedule.EventRecord(e))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// WriteICS writes events as a VCALENDAR with one VEVENT per occurrence.
func WriteICS(w io.Writer, events []model.Event) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	stamp := now().UTC()
	for _, e := range events {
		ve := cal.AddEvent(occurrenceUID(e))
		ve.SetDtStampTime(stamp)
		ve.SetProperty(ical.ComponentPropertyDtStart, e.Start().Format(floating))
		ve.SetProperty(ical.ComponentPropertyDtEnd, e.End().Format(floating))
		ve.SetSummary(e.Task.Name())
		ve.SetProperty(ical.ComponentPropertyCategories, e.Task.Category())
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}

func occurrenceUID(e model.Event) string {
	key := e.Task.Name() + "/" + e.Date.String()
	return uuid.NewSHA1(uidSpace, []byte(key)).String()
}

// Write renders events in format and replaces path atomically.
func Write(path string, format Format, events []model.Event) error {
	var buf bytes.Buffer
	var err error
	switch format {
	case FormatJSON:
		err = WriteJSON(&buf, events)
	case FormatICS:
		err = WriteICS(&buf, events)
	default:
		err = fmt.Errorf("unknown excerpt format %q", format)
	}
	if err != nil {
		return err
	}

	if err := fsutil.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write excerpt %s: %w", path, err)
	}
	appLog.Info("excerpt written", "path", path, "format", format, "events", len(events))
	return nil
}
