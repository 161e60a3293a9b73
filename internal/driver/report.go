package driver

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

var (
	passColor = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	dimColor  = color.New(color.Faint)
)

// WriteReport prints each result in entry-point order. Errors include the
// VM backtrace.
func WriteReport(w io.Writer, results []Result) error {
	for i := range results {
		if err := writeResult(w, &results[i]); err != nil {
			return err
		}
	}
	return nil
}

func writeResult(w io.Writer, r *Result) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Interpreting: %s\n", r.Name)
	if r.Trace != "" {
		sb.WriteString(r.Trace)
	}
	switch r.Status {
	case StatusPassed:
		passColor.Fprint(&sb, "Test passed!")
		sb.WriteString("\n\n")
	case StatusMismatch:
		fmt.Fprintf(&sb, "Actual value:\t%s\nExpected value:\t%s\n\n", r.Value, r.Expected)
	case StatusFailed:
		failColor.Fprint(&sb, "error: ")
		sb.WriteString(r.Err.FormatBacktrace())
		sb.WriteString("\n")
	default:
		fmt.Fprintf(&sb, "=> %s\n\n", r.Value)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Summary counts results per status.
type Summary struct {
	Passed, Mismatched, Failed, Ran int
}

// Summarize tallies results.
func Summarize(results []Result) Summary {
	var s Summary
	for i := range results {
		switch results[i].Status {
		case StatusPassed:
			s.Passed++
		case StatusMismatch:
			s.Mismatched++
		case StatusFailed:
			s.Failed++
		default:
			s.Ran++
		}
	}
	return s
}

// OK reports whether nothing mismatched or failed.
func (s Summary) OK() bool { return s.Mismatched == 0 && s.Failed == 0 }

// WriteSummary prints an aligned status table followed by the totals line.
func WriteSummary(w io.Writer, results []Result) error {
	width := 0
	for i := range results {
		width = max(width, runewidth.StringWidth(results[i].Name))
	}
	var sb strings.Builder
	for i := range results {
		r := &results[i]
		sb.WriteString("  ")
		sb.WriteString(runewidth.FillRight(r.Name, width))
		sb.WriteString("  ")
		status := runewidth.FillRight(r.Status.String(), len("mismatch"))
		switch r.Status {
		case StatusPassed:
			passColor.Fprint(&sb, status)
		case StatusMismatch, StatusFailed:
			failColor.Fprint(&sb, status)
		default:
			sb.WriteString(status)
		}
		sb.WriteString("  ")
		dimColor.Fprintf(&sb, "%.2f ms", toMillis(r.Duration))
		sb.WriteString("\n")
	}
	s := Summarize(results)
	fmt.Fprintf(&sb, "%d passed, %d mismatched, %d failed, %d without expectation\n",
		s.Passed, s.Mismatched, s.Failed, s.Ran)
	_, err := io.WriteString(w, sb.String())
	return err
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
