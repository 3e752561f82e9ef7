package schedule

import (
	"errors"
	"fmt"

	"pss/internal/caltime"
	"pss/internal/model"
)

var (
	ErrDuplicateName   = errors.New("duplicate task name")
	ErrOverlapConflict = errors.New("task overlaps an existing task")
	ErrTypeMismatch    = errors.New("replacement task is a different kind")
	ErrNotFound        = errors.New("task not found")
	ErrMalformedInput  = errors.New("malformed schedule input")
	ErrImportFailed    = errors.New("schedule import failed")
	ErrInvalidWindow   = errors.New("invalid event window")
)

// ConflictError names the stored task a rejected task collides with.
type ConflictError struct {
	Task     string
	Existing string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("task %q overlaps existing task %q", e.Task, e.Existing)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrOverlapConflict
}

// KindOf names the error kind of err for display, or "" for errors outside
// the scheduling taxonomy. ImportFailed and MalformedInput take precedence
// over the cause they wrap.
func KindOf(err error) string {
	kinds := []struct {
		target error
		name   string
	}{
		{ErrImportFailed, "ImportFailed"},
		{ErrMalformedInput, "MalformedInput"},
		{ErrDuplicateName, "DuplicateName"},
		{ErrOverlapConflict, "OverlapConflict"},
		{model.ErrNoMatchingOccurrence, "NoMatchingOccurrence"},
		{ErrTypeMismatch, "TypeMismatch"},
		{ErrNotFound, "NotFound"},
		{caltime.ErrMalformedDate, "MalformedDate"},
		{caltime.ErrInvalidTime, "ValidationError"},
		{model.ErrInvalidTask, "ValidationError"},
		{ErrInvalidWindow, "ValidationError"},
	}
	for _, k := range kinds {
		if errors.Is(err, k.target) {
			return k.name
		}
	}
	return ""
}
