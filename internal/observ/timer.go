// Package observ records wall-clock timings of the CLI phases.
package observ

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// Phase records the duration of one named phase.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks phases in the order they were begun.
type Timer struct {
	phases []Phase
	now    func() time.Time
}

// NewTimer creates an empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 4), now: time.Now} }

// Begin starts a phase and returns a function ending it with an optional note.
func (t *Timer) Begin(name string) func(note string) {
	if t == nil {
		return func(string) {}
	}
	t.phases = append(t.phases, Phase{Name: name, Start: t.now()})
	idx := len(t.phases) - 1
	return func(note string) {
		p := &t.phases[idx]
		p.Dur = t.now().Sub(p.Start)
		p.Note = note
	}
}

// Phases returns the recorded phases.
func (t *Timer) Phases() []Phase {
	if t == nil {
		return nil
	}
	return t.phases
}

// Total sums the durations of every phase.
func (t *Timer) Total() time.Duration {
	var total time.Duration
	for _, p := range t.Phases() {
		total += p.Dur
	}
	return total
}

// WriteSummary prints one aligned line per phase plus a total.
func (t *Timer) WriteSummary(w io.Writer) error {
	phases := t.Phases()
	width := runewidth.StringWidth("total")
	for _, p := range phases {
		width = max(width, runewidth.StringWidth(p.Name))
	}
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range phases {
		fmt.Fprintf(&sb, "  %s %8.2f ms", runewidth.FillRight(p.Name, width), toMillis(p.Dur))
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "  %s %8.2f ms\n", runewidth.FillRight("total", width), toMillis(t.Total()))
	_, err := io.WriteString(w, sb.String())
	return err
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
