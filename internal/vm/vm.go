package vm

import (
	"fmt"

	"mirvm/internal/mir"
)

// Resolver supplies function bodies for function references.
type Resolver interface {
	Func(id mir.FuncID) (*mir.Func, bool)
}

// Options configures VM execution.
type Options struct {
	Trace *Tracer // Execution tracer; nil disables tracing

	// MaxDepth bounds the number of live frames. Zero means unbounded.
	MaxDepth int
	// MaxSteps bounds the statements and terminators one Run executes.
	// Zero means unbounded.
	MaxSteps int
}

// VM is a direct MIR interpreter. A VM is not safe for concurrent use.
type VM struct {
	Funcs  Resolver
	Values []Value // value stack shared by all live frames
	Stack  []Frame // call stack, last is current
	Trace  *Tracer

	opts  Options
	steps int
	eb    *errorBuilder
}

// New creates a VM resolving callees through funcs.
func New(funcs Resolver, opts Options) *VM {
	vm := &VM{
		Funcs: funcs,
		Trace: opts.Trace,
		opts:  opts,
	}
	vm.eb = &errorBuilder{vm: vm}
	return vm
}

// Depth returns the number of live frames.
func (vm *VM) Depth() int { return len(vm.Stack) }

// Run calls fn with args and executes it to completion.
//
// On failure every frame pushed by this call is discarded, so the VM is left
// exactly as it was before Run and can be reused.
func (vm *VM) Run(fn *mir.Func, args []Value) (result Value, vmErr *VMError) {
	if fn == nil {
		return Value{}, vm.eb.unsupported("call of nil function body")
	}
	baseDepth, baseLen := len(vm.Stack), len(vm.Values)
	defer func() {
		if vmErr != nil {
			vm.Stack = vm.Stack[:baseDepth]
			vm.Values = vm.Values[:baseLen]
		}
	}()

	if vmErr := vm.pushFrame(fn, args); vmErr != nil {
		return Value{}, vmErr
	}
	vm.Trace.TraceCall(len(vm.Stack), fn, args)
	vm.steps = 0
	for {
		done, ret, stepErr := vm.step(baseDepth)
		if stepErr != nil {
			return Value{}, stepErr
		}
		if done {
			return ret, nil
		}
	}
}

// step executes exactly one statement or terminator of the current frame.
// done reports that the frame at baseDepth returned ret.
func (vm *VM) step(baseDepth int) (done bool, ret Value, vmErr *VMError) {
	if vm.opts.MaxSteps > 0 {
		if vm.steps >= vm.opts.MaxSteps {
			return false, Value{}, vm.eb.stepLimit(vm.opts.MaxSteps)
		}
		vm.steps++
	}

	frame := vm.top()
	if frame == nil {
		return false, Value{}, vm.eb.frameUnderflow()
	}
	block := frame.CurrentBlock()
	if block == nil {
		return false, Value{}, vm.eb.unsupported(fmt.Sprintf("invalid block id: bb%d", frame.BB))
	}

	if frame.IP >= len(block.Stmts) {
		return vm.execTerminator(frame, &block.Term, baseDepth)
	}

	stmt := &block.Stmts[frame.IP]
	if vmErr := vm.execStmt(frame, stmt); vmErr != nil {
		return false, Value{}, vmErr
	}
	frame.IP++
	return false, Value{}, nil
}

// execStmt executes a single non-terminating statement.
func (vm *VM) execStmt(frame *Frame, stmt *mir.Stmt) *VMError {
	switch stmt.Kind {
	case mir.StmtAssign:
		val, vmErr := vm.evalRValue(&stmt.Assign.Src)
		if vmErr != nil {
			return vmErr
		}
		ptr, vmErr := vm.resolve(stmt.Assign.Dst)
		if vmErr != nil {
			return vmErr
		}
		if vmErr := vm.store(ptr, val); vmErr != nil {
			return vmErr
		}
		vm.Trace.TraceStmt(len(vm.Stack), frame, stmt, &SlotWrite{Place: stmt.Assign.Dst, Ptr: ptr, Value: val})

	case mir.StmtDrop, mir.StmtNop:
		// Nothing owns resources yet, so drops release nothing.
		vm.Trace.TraceStmt(len(vm.Stack), frame, stmt, nil)

	default:
		return vm.eb.unsupported(fmt.Sprintf("statement kind %d", stmt.Kind))
	}
	return nil
}
