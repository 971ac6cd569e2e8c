package restriction

import (
	"errors"
	"fmt"
)

const (
	MinWindowMinutes = 60
	MaxWindowMinutes = 120
)

var (
	ErrInvalidRange = errors.New("allowed window must last between 1 and 2 hours")
	ErrInvalidHour  = errors.New("hour must be between 0 and 23")
)

// TimeRange is a daily window. When ToHour < FromHour the window wraps past midnight.
type TimeRange struct {
	FromHour   int
	FromMinute int
	ToHour     int
	ToMinute   int
}

// HourRange builds a range with both minutes at zero, the shape persisted restrictions use.
func HourRange(from, to int) TimeRange { return TimeRange{FromHour: from, ToHour: to} }

func (r TimeRange) From() Clock { return Clock{Hour: r.FromHour, Minute: r.FromMinute} }
func (r TimeRange) To() Clock   { return Clock{Hour: r.ToHour, Minute: r.ToMinute} }

// DurationMinutes adds a day to the end when the end hour is before the start hour.
func (r TimeRange) DurationMinutes() int {
	from := r.From().Minutes()
	to := r.To().Minutes()
	if r.ToHour < r.FromHour {
		to += minutesPerDay
	}
	return to - from
}

func (r TimeRange) DurationHours() float64 { return float64(r.DurationMinutes()) / 60 }

// Valid reports whether the window lasts between one and two hours inclusive.
func (r TimeRange) Valid() bool {
	d := r.DurationMinutes()
	return d >= MinWindowMinutes && d <= MaxWindowMinutes
}

// Validate returns ErrInvalidHour for out-of-range fields and ErrInvalidRange for a bad duration.
func (r TimeRange) Validate() error {
	if !validHour(r.FromHour) || !validHour(r.ToHour) {
		return ErrInvalidHour
	}
	if r.FromMinute < 0 || r.FromMinute > 59 || r.ToMinute < 0 || r.ToMinute > 59 {
		return fmt.Errorf("minute out of range: %w", ErrInvalidRange)
	}
	if !r.Valid() {
		return ErrInvalidRange
	}
	return nil
}

// Contains reports whether c falls inside the window, both ends inclusive.
func (r TimeRange) Contains(c Clock) bool {
	return containsMinute(r.From().Minutes(), r.To().Minutes(), c.Minutes())
}

// Overnight reports whether the window wraps past midnight.
func (r TimeRange) Overnight() bool { return r.From().Minutes() > r.To().Minutes() }

func (r TimeRange) String() string {
	return fmt.Sprintf("%s - %s", r.From(), r.To())
}

func validHour(h int) bool { return h >= 0 && h <= 23 }
