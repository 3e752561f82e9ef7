package caltime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate(20240515)
	require.NoError(t, err)
	assert.Equal(t, 20240515, d.Int())
	assert.Equal(t, "2024-05-15", d.String())
	assert.Equal(t, time.Wednesday, d.Weekday())

	leap, err := ParseDate(20240229)
	require.NoError(t, err)
	assert.Equal(t, time.Thursday, leap.Weekday())
}

func TestParseDateRejectsMalformed(t *testing.T) {
	for _, in := range []int{0, 2024051, 202405150, 20240230, 20231301, 20240500, 20230229} {
		_, err := ParseDate(in)
		assert.ErrorIs(t, err, ErrMalformedDate, "input %d", in)
	}
}

func TestDateArithmetic(t *testing.T) {
	d := Date(20240228)
	assert.Equal(t, Date(20240229), d.AddDays(1))
	assert.Equal(t, Date(20240301), d.AddDays(2))
	assert.Equal(t, Date(20231231), Date(20240101).AddDays(-1))
	assert.Equal(t, 7, Date(20240515).DaysUntil(20240522))
	assert.Equal(t, -31, Date(20240615).DaysUntil(20240515))
	assert.Equal(t, Date(20240515), DateOf(time.Date(2024, 5, 15, 23, 45, 0, 0, time.UTC)))
}

func TestInstantAndDuration(t *testing.T) {
	start := Date(20240515).At(17.75)
	assert.Equal(t, time.Date(2024, 5, 15, 17, 45, 0, 0, time.UTC), start)

	end := AddDuration(Date(20240515).At(23.5), 1.25)
	assert.Equal(t, time.Date(2024, 5, 16, 0, 45, 0, 0, time.UTC), end)
	assert.Equal(t, 90*time.Minute, Hours(1.5).Duration())
	assert.Equal(t, "9:15", Hours(9.25).String())
	assert.Equal(t, Hours(9.25), HoursOf(time.Date(2024, 5, 15, 9, 20, 0, 0, time.UTC)))
}

func TestValidateStartTime(t *testing.T) {
	for _, ok := range []Hours{0, 0.25, 12, 23.75} {
		assert.NoError(t, ValidateStartTime(ok), "start %v", float64(ok))
	}
	for _, bad := range []Hours{-0.25, 24, 12.1, 23.8} {
		assert.ErrorIs(t, ValidateStartTime(bad), ErrInvalidTime, "start %v", float64(bad))
	}
}

func TestValidateDuration(t *testing.T) {
	for _, ok := range []Hours{0.25, 1, 23.75} {
		assert.NoError(t, ValidateDuration(ok), "duration %v", float64(ok))
	}
	for _, bad := range []Hours{0, 24, 0.3, -1} {
		assert.ErrorIs(t, ValidateDuration(bad), ErrInvalidTime, "duration %v", float64(bad))
	}
}

func TestQuarters(t *testing.T) {
	q, ok := Hours(2.75).Quarters()
	assert.True(t, ok)
	assert.Equal(t, 11, q)

	_, ok = Hours(2.7).Quarters()
	assert.False(t, ok)
}
