package restriction

import "time"

// QuietHours suppresses notifications inside an hour window. It reuses the
// restriction containment rule, so 22-7 covers 22:00 through 07:00.
type QuietHours struct {
	Enabled bool
	Start   int
	End     int
}

func (q QuietHours) Active(t time.Time) bool {
	if !q.Enabled {
		return false
	}
	return HourRange(q.Start, q.End).Contains(ClockOf(t))
}
