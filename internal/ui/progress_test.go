package ui

import (
	"strings"
	"testing"

	"pepfix/internal/driver"
)

func TestProgressModelTracksEvents(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("fixing", []string{"a.py", "b.py", "c.py"}, events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.py", Stage: driver.StageNormalize, Status: driver.StatusWorking})
	if m.items[0].status != "normalizing" {
		t.Fatalf("status = %q, want normalizing", m.items[0].status)
	}
	m.applyEvent(driver.Event{File: "a.py", Status: driver.StatusDone, Changed: true})
	m.applyEvent(driver.Event{File: "b.py", Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "c.py", Status: driver.StatusError})
	m.applyEvent(driver.Event{File: "c.py", Status: driver.StatusWorking, Stage: driver.StageWrite})
	m.applyEvent(driver.Event{File: "unknown.py", Status: driver.StatusDone})
	m.applyEvent(driver.Event{Status: driver.StatusDone})

	if got := m.percent(); got != 1.0 {
		t.Fatalf("percent = %v, want 1", got)
	}
	if m.finished() != 3 || m.fixed != 1 || m.failed != 1 {
		t.Fatalf("finished=%d fixed=%d failed=%d", m.finished(), m.fixed, m.failed)
	}
	if m.items[2].status != "error" {
		t.Fatalf("final status was overwritten: %q", m.items[2].status)
	}

	view := m.View()
	for _, want := range []string{"fixing 3/3 (1 fixed, 1 failed)", "fixed", "clean", "error"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestProgressModelQuitsOnClose(t *testing.T) {
	events := make(chan driver.Event)
	close(events)
	m := NewProgressModel("fixing", []string{"a.py"}, events).(*progressModel)
	if _, ok := m.listenForEvent()().(doneMsg); !ok {
		t.Fatalf("closed channel must produce doneMsg")
	}
	model, _ := m.Update(doneMsg{})
	if !model.(*progressModel).done {
		t.Fatalf("doneMsg must finish the model")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short.py", 20); got != "short.py" {
		t.Fatalf("truncate kept = %q", got)
	}
	if got := truncate("very/long/path/to/module.py", 10); got != "very/lo..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Fatalf("narrow truncate = %q", got)
	}
}
