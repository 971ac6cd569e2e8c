package restriction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeRangeValidity(t *testing.T) {
	cases := []struct {
		name  string
		r     TimeRange
		valid bool
	}{
		{"exactly one hour", TimeRange{FromHour: 9, ToHour: 10}, true},
		{"59 minutes", TimeRange{FromHour: 9, ToHour: 9, ToMinute: 59}, false},
		{"exactly two hours", TimeRange{FromHour: 9, ToHour: 11}, true},
		{"121 minutes", TimeRange{FromHour: 9, ToHour: 11, ToMinute: 1}, false},
		{"quarter steps", TimeRange{FromHour: 9, FromMinute: 15, ToHour: 10, ToMinute: 45}, true},
		{"overnight one hour", TimeRange{FromHour: 23, ToHour: 0}, true},
		{"overnight two hours", TimeRange{FromHour: 23, FromMinute: 30, ToHour: 1, ToMinute: 30}, true},
		{"overnight too long", TimeRange{FromHour: 22, ToHour: 6}, false},
		{"whole day", TimeRange{FromHour: 0, ToHour: 23}, false},
		{"empty", TimeRange{FromHour: 9, ToHour: 9}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, tc.r.Valid())
		})
	}
}

func TestTimeRangeDurationWrapMatchesPlainArithmetic(t *testing.T) {
	plain := TimeRange{FromHour: 14, FromMinute: 30, ToHour: 16, ToMinute: 0}
	assert.Equal(t, 90, plain.DurationMinutes())

	wrapped := TimeRange{FromHour: 23, FromMinute: 30, ToHour: 1, ToMinute: 0}
	assert.Equal(t, 90, wrapped.DurationMinutes())
	assert.InDelta(t, 1.5, wrapped.DurationHours(), 1e-9)
}

func TestTimeRangeValidate(t *testing.T) {
	assert.NoError(t, HourRange(9, 10).Validate())
	assert.ErrorIs(t, HourRange(9, 17).Validate(), ErrInvalidRange)
	assert.ErrorIs(t, HourRange(24, 1).Validate(), ErrInvalidHour)
	assert.ErrorIs(t, TimeRange{FromHour: 9, ToHour: 10, ToMinute: 75}.Validate(), ErrInvalidRange)
}

func TestTimeRangeString(t *testing.T) {
	assert.Equal(t, "9:00 AM - 10:30 AM", TimeRange{FromHour: 9, ToHour: 10, ToMinute: 30}.String())
	assert.Equal(t, "11:00 PM - 12:45 AM", TimeRange{FromHour: 23, ToHour: 0, ToMinute: 45}.String())
	assert.Equal(t, "12:00 PM - 1:00 PM", HourRange(12, 13).String())
}

func TestTimeRangeContainsSameDay(t *testing.T) {
	r := HourRange(9, 17)
	for h := 0; h < 24; h++ {
		want := h >= 9 && h <= 17
		assert.Equal(t, want, r.Contains(Clock{Hour: h}), "hour %d", h)
	}
	assert.True(t, r.Contains(Clock{Hour: 17, Minute: 0}))
	assert.False(t, r.Contains(Clock{Hour: 17, Minute: 1}))
	assert.False(t, r.Contains(Clock{Hour: 8, Minute: 59}))
}

func TestTimeRangeContainsOvernight(t *testing.T) {
	r := HourRange(22, 6)
	assert.True(t, r.Overnight())
	assert.True(t, r.Contains(Clock{Hour: 23}))
	assert.True(t, r.Contains(Clock{Hour: 3}))
	assert.True(t, r.Contains(Clock{Hour: 22}))
	assert.True(t, r.Contains(Clock{Hour: 6}))
	assert.False(t, r.Contains(Clock{Hour: 12}))
	assert.False(t, r.Contains(Clock{Hour: 6, Minute: 1}))
	assert.False(t, r.Contains(Clock{Hour: 21, Minute: 59}))
}
