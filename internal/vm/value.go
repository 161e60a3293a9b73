// Package vm implements a direct MIR interpreter.
//
// A VM owns one flat value stack shared by every live activation record and
// a stack of frames describing how that value stack is partitioned. Calls
// push frames onto the explicit stack instead of recursing on the Go stack.
package vm

import (
	"fmt"

	"mirvm/internal/mir"
)

// ValueKind identifies the runtime type of a Value.
type ValueKind uint8

const (
	// VKUninit is the content of a slot that was never written.
	VKUninit ValueKind = iota
	// VKBool represents a boolean value.
	VKBool
	// VKInt represents a signed 64-bit integer value.
	VKInt
	// VKFunc represents a reference to a function body.
	VKFunc
)

// String returns a human-readable name for the value kind.
func (k ValueKind) String() string {
	switch k {
	case VKUninit:
		return "uninit"
	case VKBool:
		return "bool"
	case VKInt:
		return "int"
	case VKFunc:
		return "func"
	default:
		return fmt.Sprintf("ValueKind(%d)", k)
	}
}

// Value represents a runtime value in the VM. Only the field matching Kind
// is set, so two values are equal exactly when they compare equal with ==.
type Value struct {
	Kind ValueKind
	Int  int64      // For VKInt
	Bool bool       // For VKBool
	Fn   mir.FuncID // For VKFunc
}

// MakeInt creates an integer value.
func MakeInt(n int64) Value {
	return Value{Kind: VKInt, Int: n}
}

// MakeBool creates a boolean value.
func MakeBool(b bool) Value {
	return Value{Kind: VKBool, Bool: b}
}

// MakeFunc creates a function reference.
func MakeFunc(id mir.FuncID) Value {
	return Value{Kind: VKFunc, Fn: id}
}

// IsUninit reports whether v is the uninitialized value.
func (v Value) IsUninit() bool {
	return v.Kind == VKUninit
}

// Equal reports structural equality.
func (v Value) Equal(o Value) bool {
	return v == o
}

// String returns the textual debug form used when reporting results,
// e.g. "Int(14)" or "Bool(true)".
func (v Value) String() string {
	switch v.Kind {
	case VKUninit:
		return "Uninit"
	case VKBool:
		return fmt.Sprintf("Bool(%t)", v.Bool)
	case VKInt:
		return fmt.Sprintf("Int(%d)", v.Int)
	case VKFunc:
		return fmt.Sprintf("Func(fn#%d)", v.Fn)
	default:
		return fmt.Sprintf("<?value:%d>", v.Kind)
	}
}
