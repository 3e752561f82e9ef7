package schedule

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pss/internal/model"
)

func sampleStore(t *testing.T) *Store {
	t.Helper()
	s := New()
	require.NoError(t, s.Add(recurring(t, "Dinner", 20240515, 18, 1, 20240615, model.Daily)))
	require.NoError(t, s.Add(anti(t, "NoDinner", 20240517, 18, 1)))
	require.NoError(t, s.Add(recurring(t, "Class", 20240515, 9, 2.5, 20240612, model.Weekly)))
	require.NoError(t, s.Add(transient(t, "Party", 20240517, 17, 3)))
	return s
}

func TestDumpShape(t *testing.T) {
	s := New()
	require.NoError(t, s.Add(recurring(t, "Dinner", 20240515, 18, 1, 20240615, model.Daily)))
	require.NoError(t, s.Add(anti(t, "NoDinner", 20240517, 18, 1)))
	require.NoError(t, s.Add(transient(t, "Party", 20240517, 17.25, 2.75)))

	data, err := s.Dump()
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"Name":"Dinner","Type":"Meal","StartDate":20240515,"StartTime":18,"Duration":1,"EndDate":20240615,"Frequency":1},
		{"Name":"NoDinner","Type":"Cancellation","Date":20240517,"StartTime":18,"Duration":1},
		{"Name":"Party","Type":"Appointment","Date":20240517,"StartTime":17.25,"Duration":2.75}
	]`, string(data))
}

func TestDumpLoadRoundTrip(t *testing.T) {
	data, err := sampleStore(t).Dump()
	require.NoError(t, err)

	loaded := New()
	require.NoError(t, loaded.Load(data))
	assert.Equal(t, 4, loaded.Len())

	again, err := loaded.Dump()
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))

	a, ok := loaded.Find("NoDinner")
	require.True(t, ok)
	assert.Equal(t, "Dinner", a.(*model.Anti).Cancels())
}

func TestRoundTripEveryCategory(t *testing.T) {
	s := New()
	date := 20240501
	for i, c := range model.TransientCategories {
		tr, err := model.NewTransient(fmt.Sprintf("T%d", i), c, date+i, 9, 1)
		require.NoError(t, err)
		require.NoError(t, s.Add(tr))
	}
	for i, c := range model.RecurringCategories {
		r, err := model.NewRecurring(fmt.Sprintf("R%d", i), c, 20240601, float64(i), 0.5, 20240630, model.Daily)
		require.NoError(t, err)
		require.NoError(t, s.Add(r))
	}

	// the anti-task category cannot reach the store on a task that would
	// read back as something else
	_, err := model.NewTransient("Fake", model.CancellationCategory, 20240520, 9, 1)
	require.ErrorIs(t, err, model.ErrInvalidTask)

	data, err := s.Dump()
	require.NoError(t, err)
	loaded := New()
	require.NoError(t, loaded.Load(data))
	again, err := loaded.Dump()
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestLoadRejectsRecurringCancellationCategory(t *testing.T) {
	err := New().Load([]byte(`[{"Name":"R","Type":"Cancellation","StartDate":20240515,"StartTime":18,"Duration":1,"EndDate":20240615,"Frequency":1}]`))
	require.ErrorIs(t, err, ErrMalformedInput)
	assert.ErrorIs(t, err, model.ErrInvalidTask)
}

func TestLoadOrdersRecordsByKind(t *testing.T) {
	// the transient only fits once the anti-task is bound, and the anti-task
	// only binds once the recurring task exists
	data := []byte(`[
		{"Name":"Party","Type":"Visit","Date":20240517,"StartTime":17,"Duration":3},
		{"Name":"NoDinner","Type":"Cancellation","Date":20240517,"StartTime":18,"Duration":1},
		{"Name":"Dinner","Type":"Meal","StartDate":20240515,"StartTime":18,"Duration":1,"EndDate":20240615,"Frequency":1}
	]`)

	s := New()
	require.NoError(t, s.Load(data))
	assert.Equal(t, 3, s.Len())
	assertInvariant(t, s)
}

func TestLoadMergesIntoExistingTasks(t *testing.T) {
	s := New()
	require.NoError(t, s.Add(transient(t, "Lunch", 20240520, 12, 1)))

	require.NoError(t, s.Load([]byte(`[{"Name":"Nap","Type":"Rest","Date":20240520,"StartTime":13,"Duration":1}]`)))
	assert.Equal(t, 2, s.Len())
}

func TestLoadIsAllOrNothing(t *testing.T) {
	s := sampleStore(t)
	before, err := s.Dump()
	require.NoError(t, err)

	data := []byte(`[
		{"Name":"Walk","Type":"Exercise","Date":20240701,"StartTime":7,"Duration":1},
		{"Name":"Clash","Type":"Exercise","Date":20240520,"StartTime":18.5,"Duration":1}
	]`)
	err = s.Load(data)
	require.ErrorIs(t, err, ErrImportFailed)
	assert.ErrorIs(t, err, ErrOverlapConflict)
	assert.Equal(t, "ImportFailed", KindOf(err))

	after, err := s.Dump()
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
	_, ok := s.Find("Walk")
	assert.False(t, ok)
}

func TestLoadRejectsDuplicatesAgainstStore(t *testing.T) {
	s := sampleStore(t)
	err := s.Load([]byte(`[{"Name":"NoDinner","Type":"Visit","Date":20240701,"StartTime":7,"Duration":1}]`))
	require.ErrorIs(t, err, ErrImportFailed)
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Equal(t, 4, s.Len())
}

func TestLoadMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `[{"Name":`},
		{"top level object", `{"Name":"X"}`},
		{"record not object", `[1]`},
		{"missing field", `[{"Name":"X","Type":"Visit","StartTime":7,"Duration":1}]`},
		{"wrong field type", `[{"Name":"X","Type":"Visit","Date":"20240517","StartTime":7,"Duration":1}]`},
		{"fractional date", `[{"Name":"X","Type":"Visit","Date":20240517.5,"StartTime":7,"Duration":1}]`},
		{"bad calendar date", `[{"Name":"X","Type":"Visit","Date":20240231,"StartTime":7,"Duration":1}]`},
		{"bad start time", `[{"Name":"X","Type":"Visit","Date":20240517,"StartTime":7.1,"Duration":1}]`},
		{"bad frequency", `[{"Name":"R","Type":"Meal","StartDate":20240515,"StartTime":18,"Duration":1,"EndDate":20240615,"Frequency":3}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			err := s.Load([]byte(tt.data))
			require.ErrorIs(t, err, ErrMalformedInput)
			assert.Equal(t, "MalformedInput", KindOf(err))
			assert.Equal(t, 0, s.Len())
		})
	}
}

func TestParseClassifiesRecords(t *testing.T) {
	tasks, err := Parse([]byte(`[
		{"Name":"T","Type":"Visit","Date":20240517,"StartTime":17,"Duration":3},
		{"Name":"A","Type":"Cancellation","Date":20240517,"StartTime":18,"Duration":1},
		{"Name":"R","Type":"Meal","StartDate":20240515,"StartTime":18,"Duration":1,"EndDate":20240615,"Frequency":7}
	]`))
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, model.KindRecurring, tasks[0].Kind())
	assert.Equal(t, model.KindAnti, tasks[1].Kind())
	assert.Equal(t, model.KindTransient, tasks[2].Kind())
	assert.Equal(t, model.Weekly, tasks[0].(*model.Recurring).Frequency())

	empty, err := Parse([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestKindOf(t *testing.T) {
	s := New()
	assert.Equal(t, "NotFound", KindOf(s.Delete("x")))
	_, err := s.Events(20240515, 0)
	assert.Equal(t, "ValidationError", KindOf(err))
	_, err = model.NewTransient("X", "Visit", 20241301, 7, 1)
	assert.Equal(t, "MalformedDate", KindOf(err))
	assert.Equal(t, "", KindOf(nil))
}
