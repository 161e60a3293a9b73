package vm

import (
	"fmt"

	"mirvm/internal/mir"
)

// evalBinaryOp applies op to two integers. Arithmetic wraps on overflow and
// shift counts are taken modulo 64.
func (vm *VM) evalBinaryOp(op mir.BinOp, left, right Value) (Value, *VMError) {
	if left.Kind != VKInt || right.Kind != VKInt {
		return Value{}, vm.eb.typeMismatch("int", fmt.Sprintf("%s and %s", left.Kind, right.Kind))
	}
	l, r := left.Int, right.Int

	switch op {
	case mir.BinAdd:
		return MakeInt(l + r), nil
	case mir.BinSub:
		return MakeInt(l - r), nil
	case mir.BinMul:
		return MakeInt(l * r), nil
	case mir.BinDiv:
		if r == 0 {
			return Value{}, vm.eb.divisionByZero(op)
		}
		return MakeInt(l / r), nil
	case mir.BinRem:
		if r == 0 {
			return Value{}, vm.eb.divisionByZero(op)
		}
		return MakeInt(l % r), nil
	case mir.BinBitXor:
		return MakeInt(l ^ r), nil
	case mir.BinBitAnd:
		return MakeInt(l & r), nil
	case mir.BinBitOr:
		return MakeInt(l | r), nil
	case mir.BinShl:
		return MakeInt(l << (uint64(r) & 63)), nil
	case mir.BinShr:
		return MakeInt(l >> (uint64(r) & 63)), nil
	case mir.BinEq:
		return MakeBool(l == r), nil
	case mir.BinLt:
		return MakeBool(l < r), nil
	case mir.BinLe:
		return MakeBool(l <= r), nil
	case mir.BinNe:
		return MakeBool(l != r), nil
	case mir.BinGe:
		return MakeBool(l >= r), nil
	case mir.BinGt:
		return MakeBool(l > r), nil
	default:
		return Value{}, vm.eb.unsupported(fmt.Sprintf("binary operator %s", op))
	}
}

// evalUnaryOp applies op to an integer.
func (vm *VM) evalUnaryOp(op mir.UnOp, operand Value) (Value, *VMError) {
	if operand.Kind != VKInt {
		return Value{}, vm.eb.typeMismatch("int", operand.Kind.String())
	}
	switch op {
	case mir.UnNot:
		return MakeInt(^operand.Int), nil
	case mir.UnNeg:
		return MakeInt(-operand.Int), nil
	default:
		return Value{}, vm.eb.unsupported(fmt.Sprintf("unary operator %s", op))
	}
}
