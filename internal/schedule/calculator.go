// Package schedule computes the end of the work day from its start.
package schedule

import (
	"fmt"
	"time"

	"github.com/verte-zerg/workfetch/internal/model"
)

// DefaultRoundMinutes is the rounding granularity for the start time.
const DefaultRoundMinutes = 15

// Calculator derives the day's schedule from an effective start.
type Calculator struct {
	// RoundMinutes is the granularity the start is rounded to. Zero or
	// negative disables rounding.
	RoundMinutes int
}

// NewCalculator returns a calculator with the given granularity.
func NewCalculator(roundMinutes int) Calculator {
	return Calculator{RoundMinutes: roundMinutes}
}

// Compute returns the schedule for start at now. Durations are used as
// given and remaining minutes are not clamped.
func (c Calculator) Compute(start time.Time, sched model.Schedule, now time.Time) model.ScheduleResult {
	rounded := Round(start, c.RoundMinutes)
	total := sched.WorkMinutes + sched.BreakMinutes
	end := rounded.Add(time.Duration(total) * time.Minute)
	return model.ScheduleResult{
		RoundedStart:       rounded,
		WorkMinutes:        sched.WorkMinutes,
		BreakMinutes:       sched.BreakMinutes,
		TargetTotalMinutes: total,
		EndOfDay:           end,
		RemainingMinutes:   int(end.Sub(now) / time.Minute),
	}
}

// Round rounds t to the nearest multiple of granularity minutes within
// the hour, half up. Seconds are dropped before rounding.
func Round(t time.Time, granularity int) time.Time {
	base := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
	if granularity <= 0 {
		return base
	}
	rem := t.Minute() % granularity
	if rem*2 < granularity {
		return base.Add(-time.Duration(rem) * time.Minute)
	}
	return base.Add(time.Duration(granularity-rem) * time.Minute)
}

// HoursMinutes splits a minute count into hours and minutes.
func HoursMinutes(total int) (hours, minutes int) {
	return total / 60, total % 60
}

// FormatDuration renders minutes as "5h 12m" or "45m".
func FormatDuration(total int) string {
	hours, minutes := HoursMinutes(total)
	if hours != 0 {
		if minutes < 0 {
			minutes = -minutes
		}
		return fmt.Sprintf("%dh %02dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
