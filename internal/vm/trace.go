package vm

import (
	"fmt"
	"io"
	"strings"

	"mirvm/internal/mir"
)

// Tracer outputs execution traces for debugging. A nil *Tracer is valid and
// discards everything.
type Tracer struct {
	w io.Writer
}

// NewTracer creates a new tracer that writes to w.
func NewTracer(w io.Writer) *Tracer {
	return &Tracer{w: w}
}

// SlotWrite records a value stored by a statement.
type SlotWrite struct {
	Place mir.Place
	Ptr   Pointer
	Value Value
}

// TraceStmt traces execution of a statement.
// Format: [depth=N] <func> bb<id>:ip<ip> <stmt>
func (t *Tracer) TraceStmt(depth int, frame *Frame, stmt *mir.Stmt, write *SlotWrite) {
	if t == nil || t.w == nil {
		return
	}
	fmt.Fprintf(t.w, "[depth=%d] %s bb%d:ip%d %s\n",
		depth, frame.Func.Name, frame.BB, frame.IP, mir.FormatStmt(stmt))
	if write != nil {
		fmt.Fprintf(t.w, "    write %s@%s = %s\n", write.Place, write.Ptr, write.Value)
	}
}

// TraceTerm traces execution of a terminator.
// Format: [depth=N] <func> bb<id>:term <terminator>
func (t *Tracer) TraceTerm(depth int, frame *Frame, term *mir.Terminator) {
	if t == nil || t.w == nil {
		return
	}
	fmt.Fprintf(t.w, "[depth=%d] %s bb%d:term %s\n",
		depth, frame.Func.Name, frame.BB, mir.FormatTerm(term))
}

// TraceCall traces entry into a callee.
func (t *Tracer) TraceCall(depth int, fn *mir.Func, args []Value) {
	if t == nil || t.w == nil {
		return
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	fmt.Fprintf(t.w, "[depth=%d] enter %s(%s)\n", depth, fn.Name, strings.Join(parts, ", "))
}

// TraceReturn traces a frame leaving with its return value.
func (t *Tracer) TraceReturn(depth int, fn *mir.Func, v Value) {
	if t == nil || t.w == nil {
		return
	}
	fmt.Fprintf(t.w, "[depth=%d] leave %s => %s\n", depth, fn.Name, v)
}
