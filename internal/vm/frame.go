package vm

import (
	"fmt"

	"mirvm/internal/mir"
)

// Frame is one activation record. It owns the value-stack slots
// [Base, Base+Size()) laid out as:
//
//	Base                         return value
//	Base+1 ...                   arguments
//	Base+1+NumArgs ...           variables
//	Base+1+NumArgs+NumVars ...   temporaries
type Frame struct {
	Func *mir.Func

	Base     int
	NumArgs  int
	NumVars  int
	NumTemps int

	BB mir.BlockID // Current basic block
	IP int         // Statement index within BB; len(Stmts) means the terminator

	// Set while a call made by this frame is in flight.
	retDst    Pointer
	retTarget mir.BlockID
}

// Size returns the number of value-stack slots the frame occupies.
func (f *Frame) Size() int {
	return 1 + f.NumArgs + f.NumVars + f.NumTemps
}

func (f *Frame) ReturnOffset() int { return f.Base }

func (f *Frame) ArgOffset(i int) int { return f.Base + 1 + i }

func (f *Frame) VarOffset(i int) int { return f.Base + 1 + f.NumArgs + i }

func (f *Frame) TempOffset(i int) int { return f.Base + 1 + f.NumArgs + f.NumVars + i }

// CurrentBlock returns the current basic block being executed.
func (f *Frame) CurrentBlock() *mir.Block {
	return f.Func.Block(f.BB)
}

// pushFrame allocates a frame for fn atop the value stack. Every slot starts
// uninitialized; args then fill the argument section in order.
func (vm *VM) pushFrame(fn *mir.Func, args []Value) *VMError {
	if len(args) != len(fn.Args) {
		return vm.eb.argumentCount(fn.Name, len(fn.Args), len(args))
	}
	if vm.opts.MaxDepth > 0 && len(vm.Stack) >= vm.opts.MaxDepth {
		return vm.eb.stackOverflow(vm.opts.MaxDepth)
	}
	vm.Stack = append(vm.Stack, Frame{
		Func:      fn,
		Base:      len(vm.Values),
		NumArgs:   len(fn.Args),
		NumVars:   len(fn.Vars),
		NumTemps:  len(fn.Temps),
		BB:        fn.Entry,
		retTarget: mir.NoBlockID,
	})
	frame := &vm.Stack[len(vm.Stack)-1]
	vm.Values = append(vm.Values, make([]Value, frame.Size())...)
	copy(vm.Values[frame.ArgOffset(0):], args)
	return nil
}

// popFrame removes the newest frame and discards its slots.
func (vm *VM) popFrame() (Frame, *VMError) {
	if len(vm.Stack) == 0 {
		return Frame{}, vm.eb.frameUnderflow()
	}
	frame := vm.Stack[len(vm.Stack)-1]
	vm.Stack = vm.Stack[:len(vm.Stack)-1]
	vm.Values = vm.Values[:frame.Base]
	return frame, nil
}

// top returns the current frame, or nil when no call is active.
func (vm *VM) top() *Frame {
	if len(vm.Stack) == 0 {
		return nil
	}
	return &vm.Stack[len(vm.Stack)-1]
}

// resolve maps a place of the current frame to a stack pointer. Enclosing
// frames are never addressed.
func (vm *VM) resolve(p mir.Place) (Pointer, *VMError) {
	frame := vm.top()
	if frame == nil {
		return Pointer{}, vm.eb.frameUnderflow()
	}
	i := int(p.Index)
	switch p.Kind {
	case mir.PlaceReturn:
		return StackPtr(frame.ReturnOffset()), nil
	case mir.PlaceArg:
		if i >= frame.NumArgs {
			return Pointer{}, vm.eb.unsupported(fmt.Sprintf("%s out of range (%d args)", p, frame.NumArgs))
		}
		return StackPtr(frame.ArgOffset(i)), nil
	case mir.PlaceVar:
		if i >= frame.NumVars {
			return Pointer{}, vm.eb.unsupported(fmt.Sprintf("%s out of range (%d vars)", p, frame.NumVars))
		}
		return StackPtr(frame.VarOffset(i)), nil
	case mir.PlaceTemp:
		if i >= frame.NumTemps {
			return Pointer{}, vm.eb.unsupported(fmt.Sprintf("%s out of range (%d temps)", p, frame.NumTemps))
		}
		return StackPtr(frame.TempOffset(i)), nil
	default:
		return Pointer{}, vm.eb.unsupported(fmt.Sprintf("place %s", p))
	}
}

// readPlace resolves p and loads its value.
func (vm *VM) readPlace(p mir.Place) (Value, *VMError) {
	ptr, vmErr := vm.resolve(p)
	if vmErr != nil {
		return Value{}, vmErr
	}
	return vm.load(ptr)
}
