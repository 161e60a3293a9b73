package observ

import (
	"bytes"
	"testing"
	"time"
)

func fakeClock(step time.Duration) func() time.Time {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestTimerSummary(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)

	endLoad := tm.Begin("load")
	endLoad("basics.toml")
	endRun := tm.Begin("run")
	endRun("")

	if got := tm.Total(); got != 2*time.Millisecond {
		t.Fatalf("total = %v, want 2ms", got)
	}

	var buf bytes.Buffer
	if err := tm.WriteSummary(&buf); err != nil {
		t.Fatalf("summary: %v", err)
	}
	want := "timings:\n" +
		"  load      1.00 ms  // basics.toml\n" +
		"  run       1.00 ms\n" +
		"  total     2.00 ms\n"
	if buf.String() != want {
		t.Fatalf("summary =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.Begin("x")("")
	if tm.Total() != 0 || len(tm.Phases()) != 0 {
		t.Fatal("nil timer should record nothing")
	}
}
