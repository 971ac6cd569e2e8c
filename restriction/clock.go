package restriction

import (
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

// Clock is a wall-clock time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

func ClockOf(t time.Time) Clock { return Clock{Hour: t.Hour(), Minute: t.Minute()} }

// Minutes returns minutes since midnight.
func (c Clock) Minutes() int { return c.Hour*60 + c.Minute }

func (c Clock) String() string { return FormatClock(c.Hour, c.Minute) }

// FormatClock renders a 12-hour label such as "9:05 AM" or "12:00 PM".
func FormatClock(hour, minute int) string {
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour
	switch {
	case hour == 0:
		display = 12
	case hour > 12:
		display = hour - 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, period)
}

// containsMinute is the single containment rule used everywhere: a closed
// interval when from <= to, otherwise the overnight union [from, 1439] ∪ [0, to].
func containsMinute(from, to, now int) bool {
	if from <= to {
		return now >= from && now <= to
	}
	return now >= from || now <= to
}
