// Package session decides the effective start of the work day.
package session

import (
	"time"

	"github.com/verte-zerg/workfetch/internal/model"
)

// Policy configures how same-day reruns are resolved.
type Policy struct {
	// EarliestWins keeps the earlier of the stored start and the boot time.
	// When false the stored start is always reused on the same day.
	EarliestWins bool
}

// DefaultPolicy returns the earliest-wins policy.
func DefaultPolicy() Policy {
	return Policy{EarliestWins: true}
}

// Reason describes which branch of the resolver was taken.
type Reason string

const (
	ReasonFirstRun Reason = "first-run"
	ReasonSameDay  Reason = "same-day"
	ReasonEarlier  Reason = "same-day-earlier-boot"
	ReasonRollover Reason = "day-rollover"
)

// Resolution is the outcome of resolving today's start.
type Resolution struct {
	Start  time.Time
	Record model.SessionRecord
	// Write is true when Record differs from what is stored.
	Write  bool
	Source model.StartSource
	Reason Reason
}

// Resolve picks the effective start for today from the boot time and the
// previously stored record, if any.
func Resolve(today model.Date, boot time.Time, previous *model.SessionRecord, policy Policy) Resolution {
	fresh := Resolution{
		Start:  boot,
		Record: model.SessionRecord{Date: today, StartTime: boot},
		Write:  true,
		Source: model.SourceBoot,
	}
	if previous == nil {
		fresh.Reason = ReasonFirstRun
		return fresh
	}
	if previous.Date != today {
		fresh.Reason = ReasonRollover
		return fresh
	}
	if policy.EarliestWins && boot.Before(previous.StartTime) {
		fresh.Reason = ReasonEarlier
		return fresh
	}
	source := model.SourceBoot
	if previous.StartTime.Before(boot) {
		source = model.SourceRestored
	}
	return Resolution{
		Start:  previous.StartTime,
		Record: *previous,
		Source: source,
		Reason: ReasonSameDay,
	}
}
