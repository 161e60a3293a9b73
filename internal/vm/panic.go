package vm

import (
	"fmt"
	"strings"

	"mirvm/internal/mir"
)

// PanicCode identifies the type of VM failure.
type PanicCode int

// Stable panic codes - do not change values.
const (
	PanicUnsupportedConstruct  PanicCode = 2001 // VM2001: construct the VM does not model
	PanicTypeMismatch          PanicCode = 2002 // VM2002: value of the wrong kind
	PanicNoMatchingCase        PanicCode = 2003 // VM2003: switch_int discriminant matched nothing
	PanicFrameStackUnderflow   PanicCode = 2004 // VM2004: pop or resolve with no frame
	PanicArgumentCountMismatch PanicCode = 2005 // VM2005: wrong number of call arguments
	PanicDivisionByZero        PanicCode = 2006 // VM2006: div or rem by zero
	PanicStackOverflow         PanicCode = 2007 // VM2007: call depth limit reached
	PanicStepLimit             PanicCode = 2008 // VM2008: step budget exhausted
)

var panicCodeNames = map[PanicCode]string{
	PanicUnsupportedConstruct:  "UnsupportedConstruct",
	PanicTypeMismatch:          "TypeMismatch",
	PanicNoMatchingCase:        "NoMatchingCase",
	PanicFrameStackUnderflow:   "FrameStackUnderflow",
	PanicArgumentCountMismatch: "ArgumentCountMismatch",
	PanicDivisionByZero:        "DivisionByZero",
	PanicStackOverflow:         "StackOverflow",
	PanicStepLimit:             "StepLimit",
}

// String returns the code as "VM2001" format.
func (c PanicCode) String() string {
	return fmt.Sprintf("VM%d", c)
}

// Name returns the taxonomy name of the code, e.g. "TypeMismatch".
func (c PanicCode) Name() string {
	if name, ok := panicCodeNames[c]; ok {
		return name
	}
	return c.String()
}

// Sentinels for errors.Is matching on the code alone.
var (
	ErrUnsupportedConstruct  = &VMError{Code: PanicUnsupportedConstruct}
	ErrTypeMismatch          = &VMError{Code: PanicTypeMismatch}
	ErrNoMatchingCase        = &VMError{Code: PanicNoMatchingCase}
	ErrFrameStackUnderflow   = &VMError{Code: PanicFrameStackUnderflow}
	ErrArgumentCountMismatch = &VMError{Code: PanicArgumentCountMismatch}
	ErrDivisionByZero        = &VMError{Code: PanicDivisionByZero}
	ErrStackOverflow         = &VMError{Code: PanicStackOverflow}
	ErrStepLimit             = &VMError{Code: PanicStepLimit}
)

// BacktraceFrame represents one frame in the panic backtrace.
type BacktraceFrame struct {
	FuncName string
	BB       mir.BlockID
	IP       int
}

// VMError represents a failed evaluation.
type VMError struct {
	Code      PanicCode
	Message   string
	Backtrace []BacktraceFrame // Stack frames from top to bottom
}

// Error implements the error interface.
func (p *VMError) Error() string {
	return fmt.Sprintf("panic %s %s: %s", p.Code, p.Code.Name(), p.Message)
}

// Is matches another VMError with the same code.
func (p *VMError) Is(target error) bool {
	t, ok := target.(*VMError)
	return ok && t.Code == p.Code
}

// FormatBacktrace formats the error followed by its backtrace.
func (p *VMError) FormatBacktrace() string {
	var sb strings.Builder
	sb.WriteString(p.Error())
	sb.WriteString("\n")
	if len(p.Backtrace) > 0 {
		sb.WriteString("backtrace:\n")
		for i, frame := range p.Backtrace {
			fmt.Fprintf(&sb, "  %d: %s at bb%d:ip%d\n", i, frame.FuncName, frame.BB, frame.IP)
		}
	}
	return sb.String()
}

// errorBuilder helps construct VMError values.
type errorBuilder struct {
	vm *VM
}

func (eb *errorBuilder) makeError(code PanicCode, msg string) *VMError {
	e := &VMError{
		Code:    code,
		Message: msg,
	}

	// Build backtrace from stack (top to bottom)
	stack := eb.vm.Stack
	e.Backtrace = make([]BacktraceFrame, len(stack))
	for i := len(stack) - 1; i >= 0; i-- {
		frame := &stack[i]
		e.Backtrace[len(stack)-1-i] = BacktraceFrame{
			FuncName: frame.Func.Name,
			BB:       frame.BB,
			IP:       frame.IP,
		}
	}

	return e
}

func (eb *errorBuilder) unsupported(what string) *VMError {
	return eb.makeError(PanicUnsupportedConstruct, fmt.Sprintf("unsupported: %s", what))
}

func (eb *errorBuilder) typeMismatch(expected, got string) *VMError {
	return eb.makeError(PanicTypeMismatch, fmt.Sprintf("expected %s, got %s", expected, got))
}

func (eb *errorBuilder) noMatchingCase(discr Value) *VMError {
	return eb.makeError(PanicNoMatchingCase, fmt.Sprintf("discriminant %s matched no values", discr))
}

func (eb *errorBuilder) frameUnderflow() *VMError {
	return eb.makeError(PanicFrameStackUnderflow, "tried to pop stack frame, but there were none")
}

func (eb *errorBuilder) argumentCount(fn string, want, got int) *VMError {
	return eb.makeError(PanicArgumentCountMismatch, fmt.Sprintf("%s takes %d arguments, got %d", fn, want, got))
}

func (eb *errorBuilder) divisionByZero(op mir.BinOp) *VMError {
	return eb.makeError(PanicDivisionByZero, fmt.Sprintf("attempt to %s by zero", op))
}

func (eb *errorBuilder) stackOverflow(limit int) *VMError {
	return eb.makeError(PanicStackOverflow, fmt.Sprintf("call depth exceeded %d frames", limit))
}

func (eb *errorBuilder) stepLimit(limit int) *VMError {
	return eb.makeError(PanicStepLimit, fmt.Sprintf("step budget of %d exhausted", limit))
}
