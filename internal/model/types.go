// Package model defines shared data structures.
package model

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a local calendar day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d == Date{}
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// SessionRecord is the persisted start of the current work day.
type SessionRecord struct {
	Date      Date
	StartTime time.Time
}

// Schedule holds the planned durations for the day.
type Schedule struct {
	WorkMinutes  int
	BreakMinutes int
}

// Config holds resolved settings.
type Config struct {
	Schedule     Schedule
	RoundMinutes int
	EarliestWins bool
	Backend      string
}

// StartSource tells where the effective start came from.
type StartSource string

const (
	// SourceBoot means the start is the observed system boot time.
	SourceBoot StartSource = "boot"
	// SourceRestored means an earlier stored start survived a reboot.
	SourceRestored StartSource = "restored"
)

// Label returns the display label for the source.
func (s StartSource) Label() string {
	if s == SourceRestored {
		return "Restored Start"
	}
	return "System Start"
}

// ScheduleResult is the derived schedule for one evaluation.
type ScheduleResult struct {
	RoundedStart       time.Time
	WorkMinutes        int
	BreakMinutes       int
	TargetTotalMinutes int
	EndOfDay           time.Time
	RemainingMinutes   int
}

// Done reports whether the day's target has been reached.
func (r ScheduleResult) Done() bool {
	return r.RemainingMinutes <= 0
}
