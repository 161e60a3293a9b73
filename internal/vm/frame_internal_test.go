package vm

import (
	"errors"
	"testing"

	"mirvm/internal/mir"
)

func layoutFunc(args, vars, temps int) *mir.Func {
	b := mir.NewBuilder("layout", args, vars, temps)
	b.StartBlock(b.NewBlock())
	b.Return()
	return b.Func()
}

func TestPushFrameLayout(t *testing.T) {
	machine := New(nil, Options{})
	outer := layoutFunc(0, 1, 0)
	if vmErr := machine.pushFrame(outer, nil); vmErr != nil {
		t.Fatalf("push outer: %v", vmErr)
	}

	fn := layoutFunc(2, 3, 4)
	args := []Value{MakeInt(7), MakeBool(true)}
	if vmErr := machine.pushFrame(fn, args); vmErr != nil {
		t.Fatalf("push: %v", vmErr)
	}
	frame := machine.top()
	if frame.Base != 2 {
		t.Fatalf("base = %d, want 2", frame.Base)
	}
	if frame.Size() != 10 || len(machine.Values) != 12 {
		t.Fatalf("size = %d, values = %d", frame.Size(), len(machine.Values))
	}

	tests := []struct {
		place mir.Place
		want  int
	}{
		{mir.ReturnPlace(), 2},
		{mir.ArgPlace(0), 3},
		{mir.ArgPlace(1), 4},
		{mir.VarPlace(0), 5},
		{mir.VarPlace(2), 7},
		{mir.TempPlace(0), 8},
		{mir.TempPlace(3), 11},
	}
	for _, tt := range tests {
		ptr, vmErr := machine.resolve(tt.place)
		if vmErr != nil {
			t.Fatalf("resolve %s: %v", tt.place, vmErr)
		}
		if ptr != StackPtr(tt.want) {
			t.Fatalf("resolve %s = %s, want stack[%d]", tt.place, ptr, tt.want)
		}
	}

	if got := machine.Values[frame.ArgOffset(0)]; got != MakeInt(7) {
		t.Fatalf("arg0 = %s", got)
	}
	if got := machine.Values[frame.ArgOffset(1)]; got != MakeBool(true) {
		t.Fatalf("arg1 = %s", got)
	}
	for _, off := range []int{frame.ReturnOffset(), frame.VarOffset(0), frame.TempOffset(3)} {
		if !machine.Values[off].IsUninit() {
			t.Fatalf("slot %d = %s, want Uninit", off, machine.Values[off])
		}
	}

	if _, vmErr := machine.popFrame(); vmErr != nil {
		t.Fatalf("pop: %v", vmErr)
	}
	if len(machine.Values) != 2 || machine.Depth() != 1 {
		t.Fatalf("after pop values=%d depth=%d", len(machine.Values), machine.Depth())
	}
}

func TestPushFrameArgumentCount(t *testing.T) {
	machine := New(nil, Options{})
	vmErr := machine.pushFrame(layoutFunc(2, 0, 0), []Value{MakeInt(1)})
	if vmErr == nil || vmErr.Code != PanicArgumentCountMismatch {
		t.Fatalf("expected argument mismatch, got %v", vmErr)
	}
	if machine.Depth() != 0 || len(machine.Values) != 0 {
		t.Fatal("failed push left state behind")
	}
}

func TestPopFrameUnderflow(t *testing.T) {
	machine := New(nil, Options{})
	_, vmErr := machine.popFrame()
	if !errors.Is(vmErr, ErrFrameStackUnderflow) {
		t.Fatalf("expected underflow, got %v", vmErr)
	}
	if _, vmErr := machine.resolve(mir.ReturnPlace()); !errors.Is(vmErr, ErrFrameStackUnderflow) {
		t.Fatalf("resolve without frame: %v", vmErr)
	}
}

func TestResolveOutOfRange(t *testing.T) {
	machine := New(nil, Options{})
	if vmErr := machine.pushFrame(layoutFunc(1, 1, 1), []Value{MakeInt(0)}); vmErr != nil {
		t.Fatal(vmErr)
	}
	for _, p := range []mir.Place{mir.ArgPlace(1), mir.VarPlace(1), mir.TempPlace(1), mir.StaticPlace(0)} {
		if _, vmErr := machine.resolve(p); vmErr == nil || vmErr.Code != PanicUnsupportedConstruct {
			t.Fatalf("resolve %s: expected unsupported, got %v", p, vmErr)
		}
	}
}

func TestHeapPointerFailsFast(t *testing.T) {
	machine := New(nil, Options{})
	heap := Pointer{Kind: PtrHeap, Offset: 0}
	if _, vmErr := machine.load(heap); vmErr == nil || vmErr.Code != PanicUnsupportedConstruct {
		t.Fatalf("load: %v", vmErr)
	}
	if vmErr := machine.store(heap, MakeInt(1)); vmErr == nil || vmErr.Code != PanicUnsupportedConstruct {
		t.Fatalf("store: %v", vmErr)
	}
	if vmErr := machine.store(StackPtr(3), MakeInt(1)); vmErr == nil {
		t.Fatal("store past the value stack succeeded")
	}
}

func TestStoreIgnoresPreviousKind(t *testing.T) {
	machine := New(nil, Options{})
	if vmErr := machine.pushFrame(layoutFunc(0, 1, 0), nil); vmErr != nil {
		t.Fatal(vmErr)
	}
	ptr, _ := machine.resolve(mir.VarPlace(0))
	for _, v := range []Value{MakeInt(3), MakeBool(false), MakeFunc(2)} {
		if vmErr := machine.store(ptr, v); vmErr != nil {
			t.Fatal(vmErr)
		}
		got, vmErr := machine.load(ptr)
		if vmErr != nil || got != v {
			t.Fatalf("load = %s, %v; want %s", got, vmErr, v)
		}
	}
}
