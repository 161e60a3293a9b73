package vm

import (
	"math"
	"testing"

	"mirvm/internal/mir"
)

var sampleInts = []int64{
	0, 1, -1, 2, -2, 7, -13, 63, 64, 65, 1 << 40,
	math.MaxInt64, math.MinInt64, math.MaxInt64 - 1, math.MinInt64 + 1,
}

// native computes the expected result of op with Go's int64 semantics.
func native(op mir.BinOp, l, r int64) (Value, bool) {
	switch op {
	case mir.BinAdd:
		return MakeInt(l + r), true
	case mir.BinSub:
		return MakeInt(l - r), true
	case mir.BinMul:
		return MakeInt(l * r), true
	case mir.BinDiv:
		if r == 0 {
			return Value{}, false
		}
		return MakeInt(l / r), true
	case mir.BinRem:
		if r == 0 {
			return Value{}, false
		}
		return MakeInt(l % r), true
	case mir.BinBitXor:
		return MakeInt(l ^ r), true
	case mir.BinBitAnd:
		return MakeInt(l & r), true
	case mir.BinBitOr:
		return MakeInt(l | r), true
	case mir.BinShl:
		return MakeInt(l << (r & 63)), true
	case mir.BinShr:
		return MakeInt(l >> (r & 63)), true
	case mir.BinEq:
		return MakeBool(l == r), true
	case mir.BinLt:
		return MakeBool(l < r), true
	case mir.BinLe:
		return MakeBool(l <= r), true
	case mir.BinNe:
		return MakeBool(l != r), true
	case mir.BinGe:
		return MakeBool(l >= r), true
	case mir.BinGt:
		return MakeBool(l > r), true
	}
	return Value{}, false
}

func TestBinaryOpsMatchNative(t *testing.T) {
	machine := New(nil, Options{})
	for op := mir.BinAdd; op <= mir.BinGt; op++ {
		for _, l := range sampleInts {
			for _, r := range sampleInts {
				want, ok := native(op, l, r)
				got, vmErr := machine.evalBinaryOp(op, MakeInt(l), MakeInt(r))
				if !ok {
					if vmErr == nil || vmErr.Code != PanicDivisionByZero {
						t.Fatalf("%s(%d, %d): expected division by zero, got %s, %v", op, l, r, got, vmErr)
					}
					continue
				}
				if vmErr != nil {
					t.Fatalf("%s(%d, %d): %v", op, l, r, vmErr)
				}
				if got != want {
					t.Fatalf("%s(%d, %d) = %s, want %s", op, l, r, got, want)
				}
				if op.IsComparison() != (got.Kind == VKBool) {
					t.Fatalf("%s yielded %s", op, got.Kind)
				}
			}
		}
	}
}

func TestBinaryOpWraps(t *testing.T) {
	machine := New(nil, Options{})
	got, _ := machine.evalBinaryOp(mir.BinAdd, MakeInt(math.MaxInt64), MakeInt(1))
	if got != MakeInt(math.MinInt64) {
		t.Fatalf("MaxInt64+1 = %s", got)
	}
	got, _ = machine.evalBinaryOp(mir.BinDiv, MakeInt(math.MinInt64), MakeInt(-1))
	if got != MakeInt(math.MinInt64) {
		t.Fatalf("MinInt64/-1 = %s", got)
	}
	got, _ = machine.evalBinaryOp(mir.BinShl, MakeInt(1), MakeInt(65))
	if got != MakeInt(2) {
		t.Fatalf("1<<65 = %s", got)
	}
}

func TestUnaryOps(t *testing.T) {
	machine := New(nil, Options{})
	for _, n := range sampleInts {
		got, vmErr := machine.evalUnaryOp(mir.UnNot, MakeInt(n))
		if vmErr != nil || got != MakeInt(^n) {
			t.Fatalf("not %d = %s, %v", n, got, vmErr)
		}
		got, vmErr = machine.evalUnaryOp(mir.UnNeg, MakeInt(n))
		if vmErr != nil || got != MakeInt(-n) {
			t.Fatalf("neg %d = %s, %v", n, got, vmErr)
		}
	}
	if _, vmErr := machine.evalUnaryOp(mir.UnOp(9), MakeInt(1)); vmErr == nil || vmErr.Code != PanicUnsupportedConstruct {
		t.Fatalf("unknown unary op: %v", vmErr)
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Value{}, "Uninit"},
		{MakeBool(true), "Bool(true)"},
		{MakeBool(false), "Bool(false)"},
		{MakeInt(-3), "Int(-3)"},
		{MakeFunc(4), "Func(fn#4)"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Fatalf("String() = %q, want %q", got, tt.want)
		}
	}
	if !MakeInt(1).Equal(MakeInt(1)) || MakeInt(1).Equal(MakeBool(true)) {
		t.Fatal("structural equality broken")
	}
}
