package vm

import (
	"fmt"

	"mirvm/internal/mir"
)

// evalRValue evaluates an rvalue to a Value.
func (vm *VM) evalRValue(rv *mir.RValue) (Value, *VMError) {
	switch rv.Kind {
	case mir.RValueUse:
		return vm.evalOperand(&rv.Use)

	case mir.RValueBinaryOp:
		left, vmErr := vm.evalOperand(&rv.Binary.Left)
		if vmErr != nil {
			return Value{}, vmErr
		}
		right, vmErr := vm.evalOperand(&rv.Binary.Right)
		if vmErr != nil {
			return Value{}, vmErr
		}
		return vm.evalBinaryOp(rv.Binary.Op, left, right)

	case mir.RValueUnaryOp:
		operand, vmErr := vm.evalOperand(&rv.Unary.Operand)
		if vmErr != nil {
			return Value{}, vmErr
		}
		return vm.evalUnaryOp(rv.Unary.Op, operand)

	case mir.RValueAggregate:
		return Value{}, vm.eb.unsupported("aggregate construction")

	case mir.RValueRef:
		return Value{}, vm.eb.unsupported("reference to " + rv.Ref.String())

	case mir.RValueCast:
		return Value{}, vm.eb.unsupported("cast")

	default:
		return Value{}, vm.eb.unsupported(fmt.Sprintf("rvalue kind %d", rv.Kind))
	}
}

// evalOperand evaluates an operand to a Value.
func (vm *VM) evalOperand(op *mir.Operand) (Value, *VMError) {
	switch op.Kind {
	case mir.OperandConsume:
		return vm.readPlace(op.Place)
	case mir.OperandConst:
		return vm.evalConst(&op.Const)
	default:
		return Value{}, vm.eb.unsupported(fmt.Sprintf("operand kind %d", op.Kind))
	}
}

// evalConst maps a literal to a Value. Only booleans, signed integers and
// function items have a runtime representation.
func (vm *VM) evalConst(c *mir.Const) (Value, *VMError) {
	switch c.Kind {
	case mir.ConstInt:
		return MakeInt(c.IntValue), nil
	case mir.ConstBool:
		return MakeBool(c.BoolValue), nil
	case mir.ConstFn:
		return MakeFunc(c.Fn), nil
	case mir.ConstUint, mir.ConstFloat, mir.ConstStr, mir.ConstByteStr,
		mir.ConstStruct, mir.ConstTuple, mir.ConstFnPtr:
		return Value{}, vm.eb.unsupported(fmt.Sprintf("%s constant", c.Kind))
	default:
		return Value{}, vm.eb.unsupported(fmt.Sprintf("constant kind %d", c.Kind))
	}
}
