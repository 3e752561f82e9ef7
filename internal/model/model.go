package model

import (
	"errors"
	"fmt"
	"time"

	"pss/internal/caltime"
)

// CancellationCategory is the fixed category of every anti-task.
const CancellationCategory = "Cancellation"

// Categories offered for each kind of task. They are labels only, except
// that CancellationCategory belongs to anti-tasks alone.
var (
	RecurringCategories = []string{"Class", "Study", "Sleep", "Exercise", "Work", "Meal"}
	TransientCategories = []string{"Visit", "Shopping", "Appointment"}
)

// ErrInvalidTask is returned for task definitions that are structurally
// wrong (empty name, end before start, unknown frequency).
var ErrInvalidTask = errors.New("invalid task")

// Kind distinguishes the three task variants.
type Kind int

const (
	KindTransient Kind = iota
	KindRecurring
	KindAnti
)

func (k Kind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindRecurring:
		return "recurring"
	case KindAnti:
		return "anti"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Task is implemented only by *Transient, *Recurring and *Anti.
type Task interface {
	Name() string
	Category() string
	StartDate() caltime.Date
	StartTime() caltime.Hours
	Duration() caltime.Hours
	Kind() Kind

	sealed()
}

// base holds the fields common to every task. They never change after
// construction.
type base struct {
	name      string
	category  string
	startDate caltime.Date
	startTime caltime.Hours
	duration  caltime.Hours
}

func newBase(name, category string, date int, start, dur float64) (base, error) {
	if name == "" {
		return base{}, fmt.Errorf("%w: name is empty", ErrInvalidTask)
	}
	d, err := caltime.ParseDate(date)
	if err != nil {
		return base{}, err
	}
	if err := caltime.ValidateStartTime(caltime.Hours(start)); err != nil {
		return base{}, err
	}
	if err := caltime.ValidateDuration(caltime.Hours(dur)); err != nil {
		return base{}, err
	}
	return base{
		name:      name,
		category:  category,
		startDate: d,
		startTime: caltime.Hours(start),
		duration:  caltime.Hours(dur),
	}, nil
}

func (b *base) Name() string             { return b.name }
func (b *base) Category() string         { return b.category }
func (b *base) StartDate() caltime.Date  { return b.startDate }
func (b *base) StartTime() caltime.Hours { return b.startTime }
func (b *base) Duration() caltime.Hours  { return b.duration }
func (b *base) sealed()                  {}

// Start is the instant the (first) occurrence begins.
func (b *base) Start() time.Time { return b.startDate.At(b.startTime) }

// End is the exclusive end of the (first) occurrence.
func (b *base) End() time.Time { return caltime.AddDuration(b.Start(), b.duration) }

// Transient is a single occurrence [start, start+duration).
type Transient struct {
	base
}

func NewTransient(name, category string, date int, start, dur float64) (*Transient, error) {
	if category == CancellationCategory {
		return nil, fmt.Errorf("transient %q: %w: category %q is reserved for anti-tasks", name, ErrInvalidTask, category)
	}
	b, err := newBase(name, category, date, start, dur)
	if err != nil {
		return nil, fmt.Errorf("transient %q: %w", name, err)
	}
	return &Transient{base: b}, nil
}

func (t *Transient) Kind() Kind { return KindTransient }

// Anti cancels exactly one occurrence of a Recurring task. It only refers to
// its target by name; the Recurring task owns the Anti.
type Anti struct {
	base
	cancels string
}

func NewAnti(name string, date int, start, dur float64) (*Anti, error) {
	b, err := newBase(name, CancellationCategory, date, start, dur)
	if err != nil {
		return nil, fmt.Errorf("anti-task %q: %w", name, err)
	}
	return &Anti{base: b}, nil
}

func (a *Anti) Kind() Kind { return KindAnti }

// Cancels returns the name of the recurring task this anti-task is bound to,
// or "" when unbound.
func (a *Anti) Cancels() string { return a.cancels }

// Event is one resolved occurrence of a task inside a window.
type Event struct {
	Date      caltime.Date
	StartTime caltime.Hours
	Duration  caltime.Hours
	Task      Task
}

func (e Event) Start() time.Time { return e.Date.At(e.StartTime) }

func (e Event) End() time.Time { return caltime.AddDuration(e.Start(), e.Duration) }
