package session

import (
	"testing"
	"time"

	"github.com/verte-zerg/workfetch/internal/model"
)

func at(day, hour, minute, sec int) time.Time {
	return time.Date(2026, time.March, day, hour, minute, sec, 0, time.Local)
}

func TestResolveFirstRun(t *testing.T) {
	boot := at(10, 7, 41, 12)
	res := Resolve(model.DateOf(boot), boot, nil, DefaultPolicy())
	if !res.Start.Equal(boot) {
		t.Fatalf("expected start %v, got %v", boot, res.Start)
	}
	if !res.Write {
		t.Fatalf("expected first run to write")
	}
	if res.Record.Date != model.DateOf(boot) || !res.Record.StartTime.Equal(boot) {
		t.Fatalf("unexpected record: %+v", res.Record)
	}
	if res.Reason != ReasonFirstRun || res.Source != model.SourceBoot {
		t.Fatalf("unexpected reason/source: %s/%s", res.Reason, res.Source)
	}
}

func TestResolveSameDayLaterBootKeepsStored(t *testing.T) {
	today := model.DateOf(at(10, 0, 0, 0))
	prev := &model.SessionRecord{Date: today, StartTime: at(10, 7, 45, 0)}
	boot := at(10, 8, 10, 0)

	res := Resolve(today, boot, prev, DefaultPolicy())
	if !res.Start.Equal(prev.StartTime) {
		t.Fatalf("expected stored start %v, got %v", prev.StartTime, res.Start)
	}
	if res.Write {
		t.Fatalf("expected no write on same-day rerun")
	}
	if res.Source != model.SourceRestored {
		t.Fatalf("expected restored source, got %s", res.Source)
	}
}

func TestResolveSameDayEqualBootIsNoop(t *testing.T) {
	today := model.DateOf(at(10, 0, 0, 0))
	start := at(10, 7, 45, 0)
	prev := &model.SessionRecord{Date: today, StartTime: start}

	res := Resolve(today, start, prev, DefaultPolicy())
	if res.Write {
		t.Fatalf("expected no write when boot equals stored start")
	}
	if !res.Start.Equal(start) || res.Source != model.SourceBoot {
		t.Fatalf("unexpected resolution: %+v", res)
	}
}

func TestResolveSameDayEarlierBootWins(t *testing.T) {
	today := model.DateOf(at(10, 0, 0, 0))
	prev := &model.SessionRecord{Date: today, StartTime: at(10, 7, 45, 0)}
	boot := at(10, 7, 30, 0)

	res := Resolve(today, boot, prev, DefaultPolicy())
	if !res.Start.Equal(boot) {
		t.Fatalf("expected earlier boot %v, got %v", boot, res.Start)
	}
	if !res.Write || !res.Record.StartTime.Equal(boot) || res.Record.Date != today {
		t.Fatalf("expected record overwritten with earlier boot, got %+v (write=%v)", res.Record, res.Write)
	}
	if res.Reason != ReasonEarlier {
		t.Fatalf("unexpected reason %s", res.Reason)
	}
}

func TestResolveSameDayWithoutEarliestWins(t *testing.T) {
	today := model.DateOf(at(10, 0, 0, 0))
	prev := &model.SessionRecord{Date: today, StartTime: at(10, 7, 45, 0)}
	boot := at(10, 7, 30, 0)

	res := Resolve(today, boot, prev, Policy{EarliestWins: false})
	if !res.Start.Equal(prev.StartTime) || res.Write {
		t.Fatalf("expected stored start reused without write, got %+v", res)
	}
}

func TestResolveDayRollover(t *testing.T) {
	yesterday := model.DateOf(at(9, 0, 0, 0))
	prev := &model.SessionRecord{Date: yesterday, StartTime: at(9, 7, 45, 0)}
	boot := at(10, 6, 55, 0)
	today := model.DateOf(boot)

	res := Resolve(today, boot, prev, DefaultPolicy())
	if !res.Start.Equal(boot) {
		t.Fatalf("expected boot %v, got %v", boot, res.Start)
	}
	if !res.Write || res.Record.Date != today {
		t.Fatalf("expected fresh record for today, got %+v", res.Record)
	}
	if res.Reason != ReasonRollover {
		t.Fatalf("unexpected reason %s", res.Reason)
	}
}

func TestResolveRolloverAlwaysUsesBoot(t *testing.T) {
	boot := at(20, 9, 0, 0)
	today := model.DateOf(boot)
	for _, day := range []int{1, 5, 19, 21, 28} {
		prevStart := at(day, 6, 0, 0)
		prev := &model.SessionRecord{Date: model.DateOf(prevStart), StartTime: prevStart}
		res := Resolve(today, boot, prev, DefaultPolicy())
		if !res.Start.Equal(boot) || !res.Write {
			t.Fatalf("day %d: expected boot start with write, got %+v", day, res)
		}
	}
}

func TestResolveMidnightIsRollover(t *testing.T) {
	prev := &model.SessionRecord{Date: model.DateOf(at(9, 23, 50, 0)), StartTime: at(9, 23, 50, 0)}
	boot := at(9, 23, 50, 0)
	today := model.DateOf(at(10, 0, 10, 0))

	res := Resolve(today, boot, prev, DefaultPolicy())
	if res.Reason != ReasonRollover || !res.Write {
		t.Fatalf("expected rollover across midnight, got %+v", res)
	}
}
