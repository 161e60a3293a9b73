package vm

import "fmt"

// PointerKind distinguishes the storage a Pointer addresses.
type PointerKind uint8

const (
	// PtrStack addresses a slot of the value stack.
	PtrStack PointerKind = iota
	// PtrHeap addresses heap storage. The VM has no heap yet, so every
	// access through such a pointer fails.
	PtrHeap
)

// Pointer is a resolved location a Value can be loaded from or stored to.
type Pointer struct {
	Kind   PointerKind
	Offset int
}

// StackPtr returns a pointer to value-stack slot off.
func StackPtr(off int) Pointer {
	return Pointer{Kind: PtrStack, Offset: off}
}

func (p Pointer) String() string {
	switch p.Kind {
	case PtrStack:
		return fmt.Sprintf("stack[%d]", p.Offset)
	case PtrHeap:
		return fmt.Sprintf("heap[%d]", p.Offset)
	default:
		return fmt.Sprintf("<?ptr:%d>", p.Kind)
	}
}

// load reads the value addressed by p.
func (vm *VM) load(p Pointer) (Value, *VMError) {
	switch p.Kind {
	case PtrStack:
		if p.Offset < 0 || p.Offset >= len(vm.Values) {
			return Value{}, vm.eb.unsupported(fmt.Sprintf("dangling pointer %s", p))
		}
		return vm.Values[p.Offset], nil
	case PtrHeap:
		return Value{}, vm.eb.unsupported("load through heap pointer")
	default:
		return Value{}, vm.eb.unsupported(fmt.Sprintf("pointer kind %d", p.Kind))
	}
}

// store overwrites the value addressed by p regardless of what it held.
func (vm *VM) store(p Pointer, v Value) *VMError {
	switch p.Kind {
	case PtrStack:
		if p.Offset < 0 || p.Offset >= len(vm.Values) {
			return vm.eb.unsupported(fmt.Sprintf("dangling pointer %s", p))
		}
		vm.Values[p.Offset] = v
		return nil
	case PtrHeap:
		return vm.eb.unsupported("store through heap pointer")
	default:
		return vm.eb.unsupported(fmt.Sprintf("pointer kind %d", p.Kind))
	}
}
