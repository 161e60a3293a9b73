package vm

import (
	"fmt"

	"mirvm/internal/mir"
)

// execTerminator executes a block terminator.
func (vm *VM) execTerminator(frame *Frame, term *mir.Terminator, baseDepth int) (bool, Value, *VMError) {
	// Trace terminator before execution
	vm.Trace.TraceTerm(len(vm.Stack), frame, term)

	switch term.Kind {
	case mir.TermReturn:
		return vm.execTermReturn(baseDepth)
	case mir.TermGoto:
		vm.jump(frame, term.Goto.Target)
	case mir.TermIf:
		return false, Value{}, vm.execTermIf(frame, &term.If)
	case mir.TermSwitchInt:
		return false, Value{}, vm.execTermSwitchInt(frame, &term.SwitchInt)
	case mir.TermCall:
		return false, Value{}, vm.execTermCall(frame, &term.Call)
	case mir.TermDiverge, mir.TermPanic, mir.TermUnreachable:
		return false, Value{}, vm.eb.unsupported(fmt.Sprintf("%s terminator", term.Kind))
	default:
		return false, Value{}, vm.eb.unsupported(fmt.Sprintf("terminator kind %d", term.Kind))
	}
	return false, Value{}, nil
}

func (vm *VM) jump(frame *Frame, target mir.BlockID) {
	frame.BB = target
	frame.IP = 0
}

// execTermReturn reads the return slot and pops the frame. If the frame was
// entered by a call of an outer frame of the same Run, the value goes to that
// call's destination and the caller resumes at the call's target.
func (vm *VM) execTermReturn(baseDepth int) (bool, Value, *VMError) {
	frame := vm.top()
	retVal, vmErr := vm.load(StackPtr(frame.ReturnOffset()))
	if vmErr != nil {
		return false, Value{}, vmErr
	}
	popped, vmErr := vm.popFrame()
	if vmErr != nil {
		return false, Value{}, vmErr
	}
	vm.Trace.TraceReturn(len(vm.Stack)+1, popped.Func, retVal)

	if len(vm.Stack) <= baseDepth {
		return true, retVal, nil
	}

	caller := vm.top()
	if vmErr := vm.store(caller.retDst, retVal); vmErr != nil {
		return false, Value{}, vmErr
	}
	vm.jump(caller, caller.retTarget)
	caller.retDst = Pointer{}
	caller.retTarget = mir.NoBlockID
	return false, Value{}, nil
}

func (vm *VM) execTermIf(frame *Frame, term *mir.IfTerm) *VMError {
	cond, vmErr := vm.evalOperand(&term.Cond)
	if vmErr != nil {
		return vmErr
	}
	if cond.Kind != VKBool {
		return vm.eb.typeMismatch("bool", cond.Kind.String())
	}
	if cond.Bool {
		vm.jump(frame, term.Then)
	} else {
		vm.jump(frame, term.Else)
	}
	return nil
}

// execTermSwitchInt reads the discriminant slot as it stands and jumps to the
// target of the first candidate equal to it.
func (vm *VM) execTermSwitchInt(frame *Frame, term *mir.SwitchIntTerm) *VMError {
	discr, vmErr := vm.readPlace(term.Discr)
	if vmErr != nil {
		return vmErr
	}
	for i := range term.Values {
		candidate, vmErr := vm.evalConst(&term.Values[i])
		if vmErr != nil {
			return vmErr
		}
		if !discr.Equal(candidate) {
			continue
		}
		if i >= len(term.Targets) {
			return vm.eb.unsupported(fmt.Sprintf("switch_int case %d has no target", i))
		}
		vm.jump(frame, term.Targets[i])
		return nil
	}
	return vm.eb.noMatchingCase(discr)
}

// execTermCall evaluates the callee and arguments in the caller's frame,
// records where the result goes, and pushes the callee's frame.
func (vm *VM) execTermCall(frame *Frame, call *mir.CallTerm) *VMError {
	dst, vmErr := vm.resolve(call.Dst)
	if vmErr != nil {
		return vmErr
	}
	callee, vmErr := vm.evalOperand(&call.Func)
	if vmErr != nil {
		return vmErr
	}
	if callee.Kind != VKFunc {
		return vm.eb.typeMismatch("func", callee.Kind.String())
	}
	var targetFn *mir.Func
	if vm.Funcs != nil {
		targetFn, _ = vm.Funcs.Func(callee.Fn)
	}
	if targetFn == nil {
		return vm.eb.unsupported(fmt.Sprintf("call of unknown function fn#%d", callee.Fn))
	}

	// Evaluate arguments
	args := make([]Value, len(call.Args))
	for i := range call.Args {
		val, vmErr := vm.evalOperand(&call.Args[i])
		if vmErr != nil {
			return vmErr
		}
		args[i] = val
	}

	frame.retDst = dst
	frame.retTarget = call.Target
	vm.Trace.TraceCall(len(vm.Stack)+1, targetFn, args)
	// frame may be invalidated by the push below.
	return vm.pushFrame(targetFn, args)
}
