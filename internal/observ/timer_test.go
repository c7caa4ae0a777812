package observ

import (
	"strings"
	"testing"
	"time"
)

func fakeClock(step time.Duration) func() time.Time {
	cur := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		cur = cur.Add(step)
		return cur
	}
}

func TestTimerReport(t *testing.T) {
	timer := NewTimer()
	timer.now = fakeClock(time.Millisecond)

	done := timer.Track("read")
	done("3 lines")
	idx := timer.Begin("write")
	timer.End(idx, "")
	timer.End(42, "ignored")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(report.Phases))
	}
	if report.Phases[0].Name != "read" || report.Phases[0].Note != "3 lines" {
		t.Fatalf("unexpected first phase: %+v", report.Phases[0])
	}
	if report.TotalMS != 2 {
		t.Fatalf("TotalMS = %v, want 2", report.TotalMS)
	}

	summary := timer.Summary()
	if !strings.Contains(summary, "read") || !strings.Contains(summary, "// 3 lines") || !strings.Contains(summary, "total") {
		t.Fatalf("unexpected summary:\n%s", summary)
	}
}

func TestReportMerge(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "read", DurationMS: 1}, {Name: "write", DurationMS: 2}}}
	b := Report{TotalMS: 4, Phases: []PhaseReport{{Name: "write", DurationMS: 3}, {Name: "spacing", DurationMS: 1}}}
	a.Merge(b)
	if a.TotalMS != 7 || len(a.Phases) != 3 || a.Phases[1].DurationMS != 5 {
		t.Fatalf("unexpected merge result: %+v", a)
	}
}

func TestNilTimerIsSafe(t *testing.T) {
	var timer *Timer
	timer.Track("x")("")
	if len(timer.Report().Phases) != 0 {
		t.Fatal("nil timer should report nothing")
	}
}

func TestReportTotal(t *testing.T) {
	r := Report{TotalMS: 2.5}
	if got := r.Total(); got != 2500*time.Microsecond {
		t.Fatalf("Total() = %v, want 2.5ms", got)
	}
}
