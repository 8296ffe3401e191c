// Package workday resolves and computes today's work-time status.
package workday

import (
	"context"
	"fmt"
	"time"

	"github.com/verte-zerg/workfetch/internal/bootinfo"
	"github.com/verte-zerg/workfetch/internal/clock"
	"github.com/verte-zerg/workfetch/internal/model"
	"github.com/verte-zerg/workfetch/internal/schedule"
	"github.com/verte-zerg/workfetch/internal/session"
	"github.com/verte-zerg/workfetch/internal/store"
)

// Service ties the session store, boot time and clock to the resolver and
// the schedule calculator.
type Service struct {
	Store      store.SessionStore
	Boot       bootinfo.Source
	Clock      clock.Clock
	Policy     session.Policy
	Calculator schedule.Calculator
	Schedule   model.Schedule
}

// New builds a service from resolved settings.
func New(cfg model.Config, st store.SessionStore, boot bootinfo.Source, clk clock.Clock) *Service {
	return &Service{
		Store:      st,
		Boot:       boot,
		Clock:      clk,
		Policy:     session.Policy{EarliestWins: cfg.EarliestWins},
		Calculator: schedule.NewCalculator(cfg.RoundMinutes),
		Schedule:   cfg.Schedule,
	}
}

// Status is the outcome of one evaluation.
type Status struct {
	Now        time.Time
	Boot       time.Time
	Start      time.Time
	Source     model.StartSource
	Reason     session.Reason
	Record     model.SessionRecord
	Written    bool
	Result     model.ScheduleResult
	Warnings   []error
	PersistErr error
}

// Status loads the stored record, resolves today's start, persists it when
// it changed and computes the schedule. Only a missing boot time is fatal.
func (s *Service) Status(ctx context.Context) (Status, error) {
	now := s.Clock.Now()
	var st Status
	st.Now = now

	previous, err := s.Store.Load(ctx)
	if err != nil {
		st.Warnings = append(st.Warnings, fmt.Errorf("ignoring stored session: %w", err))
		previous = nil
	}

	boot, err := s.Boot.BootTime()
	if err != nil {
		return Status{}, fmt.Errorf("cannot determine system boot time: %w", err)
	}
	st.Boot = boot

	res := session.Resolve(model.DateOf(now), boot, previous, s.Policy)
	st.Start = res.Start
	st.Source = res.Source
	st.Reason = res.Reason
	st.Record = res.Record

	if res.Write {
		if err := s.Store.Save(ctx, res.Record); err != nil {
			st.PersistErr = fmt.Errorf("failed to save session to %s: %w", s.Store.Location(), err)
		} else {
			st.Written = true
		}
	}

	st.Result = s.Calculator.Compute(res.Start, s.Schedule, now)
	return st, nil
}

// Recompute refreshes the schedule of an existing status at now without
// touching the store.
func (s *Service) Recompute(st Status, now time.Time) Status {
	st.Now = now
	st.Result = s.Calculator.Compute(st.Start, s.Schedule, now)
	return st
}
