// Package schedule holds the authoritative set of tasks and keeps it free of
// duplicate names and overlapping intervals.
package schedule

import (
	"fmt"

	"pss/internal/conflict"
	appLog "pss/internal/log"
	"pss/internal/model"
)

// Store is owned by a single session; callers must not mutate it
// concurrently. Every mutating method either succeeds or leaves the store
// exactly as it was.
type Store struct {
	// tasks holds *model.Transient and *model.Recurring in insertion order.
	// Anti-tasks live inside their owning Recurring.
	tasks []model.Task
}

func New() *Store {
	return &Store{}
}

// Tasks returns every task in insertion order, each recurring task followed
// by the anti-tasks bound to it.
func (s *Store) Tasks() []model.Task {
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t)
		if r, ok := t.(*model.Recurring); ok {
			for _, a := range r.AntiTasks() {
				out = append(out, a)
			}
		}
	}
	return out
}

// Len counts tasks including bound anti-tasks.
func (s *Store) Len() int {
	return len(s.Tasks())
}

// Recurring returns the recurring tasks in insertion order.
func (s *Store) Recurring() []*model.Recurring {
	var out []*model.Recurring
	for _, t := range s.tasks {
		if r, ok := t.(*model.Recurring); ok {
			out = append(out, r)
		}
	}
	return out
}

// Find looks a task up by name, anti-tasks included.
func (s *Store) Find(name string) (model.Task, bool) {
	for _, t := range s.Tasks() {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// Add inserts t. Anti-tasks are bound to the first recurring task with a
// matching occurrence; other tasks are appended if they overlap nothing.
func (s *Store) Add(t model.Task) error {
	if t == nil {
		return fmt.Errorf("%w: nil task", model.ErrInvalidTask)
	}
	for _, name := range namesOf(t) {
		if _, taken := s.Find(name); taken {
			appLog.Debug("task rejected", "name", t.Name(), "reason", "duplicate", "conflicting_name", name)
			return fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
	}

	if a, ok := t.(*model.Anti); ok {
		r, err := model.BindFirstMatch(a, s.Recurring())
		if err != nil {
			appLog.Debug("anti-task rejected", "name", a.Name(), "date", a.StartDate())
			return err
		}
		appLog.Debug("anti-task bound", "name", a.Name(), "recurring", r.Name(), "date", a.StartDate())
		return nil
	}

	for _, existing := range s.tasks {
		if conflict.Overlaps(existing, t) {
			appLog.Debug("task rejected", "name", t.Name(), "reason", "overlap", "existing", existing.Name())
			return &ConflictError{Task: t.Name(), Existing: existing.Name()}
		}
	}

	s.tasks = append(s.tasks, t)
	appLog.Debug("task added", "name", t.Name(), "kind", t.Kind(), "date", t.StartDate(), "start", t.StartTime())
	return nil
}

// namesOf lists the names t would occupy, including anti-tasks already
// bound to a recurring task.
func namesOf(t model.Task) []string {
	names := []string{t.Name()}
	if r, ok := t.(*model.Recurring); ok {
		for _, a := range r.AntiTasks() {
			names = append(names, a.Name())
		}
	}
	return names
}

// Delete removes the named task. Deleting a recurring task discards its
// anti-tasks. Deleting an anti-task is refused if the occurrence it frees
// would collide with a stored transient task.
func (s *Store) Delete(name string) error {
	return s.remove(name, true)
}

func (s *Store) remove(name string, guard bool) error {
	for i, t := range s.tasks {
		if t.Name() == name {
			s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
			appLog.Debug("task deleted", "name", name, "kind", t.Kind())
			return nil
		}
	}

	for _, r := range s.Recurring() {
		for _, a := range r.AntiTasks() {
			if a.Name() != name {
				continue
			}
			if guard {
				if err := s.checkUncancel(r, a); err != nil {
					return err
				}
			}
			r.Release(name)
			appLog.Debug("anti-task deleted", "name", name, "recurring", r.Name())
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrNotFound, name)
}

// checkUncancel fails if unbinding a from r would put r back on top of a
// transient task.
func (s *Store) checkUncancel(r *model.Recurring, a *model.Anti) error {
	for _, t := range s.tasks {
		tr, ok := t.(*model.Transient)
		if !ok {
			continue
		}
		if conflict.Reexposes(r, a, tr) {
			return fmt.Errorf("cancellation %q frees the slot used by %q: %w",
				a.Name(), tr.Name(), &ConflictError{Task: r.Name(), Existing: tr.Name()})
		}
	}
	return nil
}

// Edit replaces the named task with a task of the same kind. Anti-tasks of
// an edited recurring task are carried over when they still match one of
// its occurrences and dropped otherwise. On failure the store is restored.
func (s *Store) Edit(name string, replacement model.Task) error {
	if replacement == nil {
		return fmt.Errorf("%w: nil replacement", model.ErrInvalidTask)
	}
	old, ok := s.Find(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if old.Kind() != replacement.Kind() {
		return fmt.Errorf("%w: %q is %s, replacement is %s", ErrTypeMismatch, name, old.Kind(), replacement.Kind())
	}

	snapshot := s.clone()
	if err := s.edit(name, old, replacement); err != nil {
		s.tasks = snapshot.tasks
		appLog.Debug("edit rolled back", "name", name, "err", err)
		return err
	}
	return nil
}

func (s *Store) edit(name string, old, replacement model.Task) error {
	var formerOwner string
	if a, ok := old.(*model.Anti); ok {
		formerOwner = a.Cancels()
	}
	if err := s.remove(name, false); err != nil {
		return err
	}

	if oldRec, ok := old.(*model.Recurring); ok {
		carryAntiTasks(oldRec, replacement.(*model.Recurring))
	}

	if err := s.Add(replacement); err != nil {
		return err
	}

	// a moved anti-task may have uncovered an occurrence of its former owner
	if formerOwner == "" {
		return nil
	}
	owner, _ := s.Find(formerOwner)
	r, ok := owner.(*model.Recurring)
	if !ok {
		return nil
	}
	for _, t := range s.tasks {
		if tr, ok := t.(*model.Transient); ok && conflict.Overlaps(r, tr) {
			return &ConflictError{Task: r.Name(), Existing: tr.Name()}
		}
	}
	return nil
}

func carryAntiTasks(from, to *model.Recurring) {
	for _, a := range from.AntiTasks() {
		fresh, err := model.NewAnti(a.Name(), a.StartDate().Int(), float64(a.StartTime()), float64(a.Duration()))
		if err != nil {
			continue
		}
		if !model.TryBind(fresh, to) {
			appLog.Debug("anti-task dropped by edit", "name", a.Name(), "recurring", to.Name())
		}
	}
}

// clone copies the store deeply enough that mutating either side never
// shows through the other.
func (s *Store) clone() *Store {
	c := &Store{tasks: make([]model.Task, len(s.tasks))}
	for i, t := range s.tasks {
		if r, ok := t.(*model.Recurring); ok {
			c.tasks[i] = r.Clone()
			continue
		}
		c.tasks[i] = t
	}
	return c
}
