package safego

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type report struct {
	name  string
	value any
}

// captureReports installs a panic handler that forwards reports the way the
// CLI forwards them to the running program.
func captureReports(t *testing.T) <-chan report {
	t.Helper()
	reports := make(chan report, 8)
	SetPanicHandler(func(name string, recovered any, _ []byte) {
		reports <- report{name: name, value: recovered}
	})
	t.Cleanup(func() { SetPanicHandler(nil) })
	return reports
}

func nextReport(t *testing.T, reports <-chan report) report {
	t.Helper()
	select {
	case r := <-reports:
		return r
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for panic report")
		return report{}
	}
}

func TestRun_CompletesWithoutPanic(t *testing.T) {
	ran := false
	if p := Run("deck-watcher.notify", func() { ran = true }); p != nil {
		t.Fatalf("Run() = %v, want nil", p)
	}
	if !ran {
		t.Fatal("fn did not run")
	}
}

func TestRun_ReturnsPanicError(t *testing.T) {
	p := Run("deck-watcher.notify", func() {
		panic("bad deck event")
	})
	if p == nil {
		t.Fatal("expected recovered panic")
	}
	if p.Name != "deck-watcher.notify" || p.Value != "bad deck event" {
		t.Fatalf("unexpected panic error %+v", p)
	}
	if p.Error() != "panic in deck-watcher.notify: bad deck event" {
		t.Fatalf("Error() = %q", p.Error())
	}
	if !strings.Contains(string(p.Stack), "safego") {
		t.Fatalf("stack should point into the recovered goroutine:\n%s", p.Stack)
	}
}

func TestRun_PanicErrorWrapsAsError(t *testing.T) {
	cause := errors.New("watch closed")
	var err error = Run("supervisor.deck-watcher", func() { panic(cause) })

	var p *PanicError
	if !errors.As(err, &p) {
		t.Fatalf("errors.As(%v) failed", err)
	}
	if p.Value != cause {
		t.Fatalf("Value = %v, want %v", p.Value, cause)
	}
}

func TestRun_ForwardsToHandler(t *testing.T) {
	reports := captureReports(t)

	Run("deck-watcher.notify", func() { panic("oops") })

	r := nextReport(t, reports)
	if r.name != "deck-watcher.notify" || r.value != "oops" {
		t.Fatalf("report = %+v", r)
	}
}

func TestRun_DefaultName(t *testing.T) {
	reports := captureReports(t)

	p := Run("", func() { panic("unnamed") })
	if p == nil || p.Name != "goroutine" {
		t.Fatalf("panic error = %+v, want name goroutine", p)
	}
	if r := nextReport(t, reports); r.name != "goroutine" {
		t.Fatalf("report name = %q, want goroutine", r.name)
	}
}

func TestRun_HandlerPanicIsContained(t *testing.T) {
	SetPanicHandler(func(string, any, []byte) { panic("handler broke") })
	t.Cleanup(func() { SetPanicHandler(nil) })

	if p := Run("deck-watcher.notify", func() { panic("first") }); p == nil || p.Value != "first" {
		t.Fatalf("panic error = %+v, want the original panic", p)
	}
}

func TestGo_RecoversAndReports(t *testing.T) {
	reports := captureReports(t)

	Go("supervisor.deck-watcher", func() { panic("worker died") })

	r := nextReport(t, reports)
	if r.name != "supervisor.deck-watcher" || r.value != "worker died" {
		t.Fatalf("report = %+v", r)
	}
}
