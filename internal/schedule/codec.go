package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/tidwall/gjson"

	appLog "pss/internal/log"
	"pss/internal/model"
)

// recurringRecord is the wire shape of a recurring task.
type recurringRecord struct {
	Name      string  `json:"Name"`
	Type      string  `json:"Type"`
	StartDate int     `json:"StartDate"`
	StartTime float64 `json:"StartTime"`
	Duration  float64 `json:"Duration"`
	EndDate   int     `json:"EndDate"`
	Frequency int     `json:"Frequency"`
}

// singleRecord is the wire shape of transient tasks, anti-tasks and
// expanded events.
type singleRecord struct {
	Name      string  `json:"Name"`
	Type      string  `json:"Type"`
	Date      int     `json:"Date"`
	StartTime float64 `json:"StartTime"`
	Duration  float64 `json:"Duration"`
}

// EventRecord renders an expanded event in the transient wire shape.
func EventRecord(e model.Event) any {
	return singleRecord{
		Name:      e.Task.Name(),
		Type:      e.Task.Category(),
		Date:      e.Date.Int(),
		StartTime: float64(e.StartTime),
		Duration:  float64(e.Duration),
	}
}

func recordOf(t model.Task) any {
	if r, ok := t.(*model.Recurring); ok {
		return recurringRecord{
			Name:      r.Name(),
			Type:      r.Category(),
			StartDate: r.StartDate().Int(),
			StartTime: float64(r.StartTime()),
			Duration:  float64(r.Duration()),
			EndDate:   r.EndDate().Int(),
			Frequency: r.Frequency().Days(),
		}
	}
	return singleRecord{
		Name:      t.Name(),
		Type:      t.Category(),
		Date:      t.StartDate().Int(),
		StartTime: float64(t.StartTime()),
		Duration:  float64(t.Duration()),
	}
}

// Dump serializes every task as an indented JSON array. Each recurring task
// is followed by its anti-tasks.
func (s *Store) Dump() ([]byte, error) {
	records := make([]any, 0, len(s.tasks))
	for _, t := range s.Tasks() {
		records = append(records, recordOf(t))
	}
	return json.MarshalIndent(records, "", "  ")
}

// Load parses data and adds every task to a copy of the store: recurring
// tasks first, then anti-tasks, then transient tasks. The copy replaces the
// store only if every task was accepted.
func (s *Store) Load(data []byte) error {
	tasks, err := Parse(data)
	if err != nil {
		appLog.Error("schedule parse failed", err)
		return err
	}

	next := s.clone()
	for _, t := range tasks {
		if err := next.Add(t); err != nil {
			appLog.Error("schedule import rolled back", err, "task", t.Name(), "records", len(tasks))
			return fmt.Errorf("%w: task %q: %w", ErrImportFailed, t.Name(), err)
		}
	}

	s.tasks = next.tasks
	appLog.Debug("schedule loaded", "records", len(tasks), "tasks", s.Len())
	return nil
}

// Parse classifies and builds every record of a JSON task array, ordered
// recurring, anti, transient with file order kept inside each group.
func Parse(data []byte) ([]model.Task, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrMalformedInput)
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: top level must be an array", ErrMalformedInput)
	}

	var recurring, anti, transient []model.Task
	var parseErr error
	i := 0
	root.ForEach(func(_, rec gjson.Result) bool {
		t, err := parseRecord(rec)
		if err != nil {
			parseErr = fmt.Errorf("%w: record %d: %w", ErrMalformedInput, i, err)
			return false
		}
		switch t.Kind() {
		case model.KindRecurring:
			recurring = append(recurring, t)
		case model.KindAnti:
			anti = append(anti, t)
		default:
			transient = append(transient, t)
		}
		i++
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	out := make([]model.Task, 0, i)
	out = append(out, recurring...)
	out = append(out, anti...)
	out = append(out, transient...)
	return out, nil
}

func parseRecord(rec gjson.Result) (model.Task, error) {
	if !rec.IsObject() {
		return nil, errors.New("record is not an object")
	}
	f := fields{rec: rec}

	switch {
	case rec.Get("Frequency").Exists():
		name, typ := f.str("Name"), f.str("Type")
		start, end := f.integer("StartDate"), f.integer("EndDate")
		st, dur := f.number("StartTime"), f.number("Duration")
		freq := f.integer("Frequency")
		if f.err != nil {
			return nil, f.err
		}
		return model.NewRecurring(name, typ, start, st, dur, end, model.Frequency(freq))

	case rec.Get("Type").Type == gjson.String && rec.Get("Type").Str == model.CancellationCategory:
		name, date := f.str("Name"), f.integer("Date")
		st, dur := f.number("StartTime"), f.number("Duration")
		if f.err != nil {
			return nil, f.err
		}
		return model.NewAnti(name, date, st, dur)

	default:
		name, typ, date := f.str("Name"), f.str("Type"), f.integer("Date")
		st, dur := f.number("StartTime"), f.number("Duration")
		if f.err != nil {
			return nil, f.err
		}
		return model.NewTransient(name, typ, date, st, dur)
	}
}

// fields reads typed record fields, keeping the first error.
type fields struct {
	rec gjson.Result
	err error
}

func (f *fields) get(key string, want gjson.Type) (gjson.Result, bool) {
	if f.err != nil {
		return gjson.Result{}, false
	}
	v := f.rec.Get(key)
	switch {
	case !v.Exists():
		f.err = fmt.Errorf("missing field %q", key)
	case v.Type != want:
		f.err = fmt.Errorf("field %q must be a %s", key, typeName(want))
	default:
		return v, true
	}
	return gjson.Result{}, false
}

func (f *fields) str(key string) string {
	v, ok := f.get(key, gjson.String)
	if !ok {
		return ""
	}
	return v.Str
}

func (f *fields) number(key string) float64 {
	v, ok := f.get(key, gjson.Number)
	if !ok {
		return 0
	}
	return v.Num
}

func (f *fields) integer(key string) int {
	n := f.number(key)
	if f.err == nil && n != math.Trunc(n) {
		f.err = fmt.Errorf("field %q must be an integer", key)
	}
	return int(n)
}

func typeName(t gjson.Type) string {
	if t == gjson.Number {
		return "number"
	}
	return "string"
}
