package mir

import "fmt"

// StmtKind enumerates statement kinds in MIR.
type StmtKind uint8

const (
	// StmtAssign stores an rvalue into a place.
	StmtAssign StmtKind = iota
	// StmtDrop releases the value held by a place.
	StmtDrop
	// StmtNop does nothing.
	StmtNop
)

// Stmt is a non-terminating MIR statement.
type Stmt struct {
	Kind StmtKind `msgpack:"kind"`

	Assign AssignStmt `msgpack:"assign"`
	Drop   DropStmt   `msgpack:"drop"`
}

// AssignStmt represents an assignment statement.
type AssignStmt struct {
	Dst Place  `msgpack:"dst"`
	Src RValue `msgpack:"src"`
}

// DropStmt represents a drop statement.
type DropStmt struct {
	Place Place `msgpack:"place"`
}

// OperandKind distinguishes operand types.
type OperandKind uint8

const (
	// OperandConsume reads the current value of a place.
	OperandConsume OperandKind = iota
	// OperandConst is a constant operand.
	OperandConst
)

// Operand represents a MIR operand.
type Operand struct {
	Kind OperandKind `msgpack:"kind"`

	Place Place `msgpack:"place"`
	Const Const `msgpack:"const"`
}

// ConstKind distinguishes constant kinds.
type ConstKind uint8

const (
	// ConstInt represents a signed integer constant.
	ConstInt ConstKind = iota
	// ConstUint represents an unsigned integer constant.
	ConstUint
	// ConstFloat represents a float constant.
	ConstFloat
	// ConstBool represents a boolean constant.
	ConstBool
	// ConstStr represents a string constant.
	ConstStr
	// ConstByteStr represents a byte string constant.
	ConstByteStr
	// ConstStruct represents a constant struct value.
	ConstStruct
	// ConstTuple represents a constant tuple value.
	ConstTuple
	// ConstFn references a named function item.
	ConstFn
	// ConstFnPtr is a function pointer produced by constant evaluation.
	ConstFnPtr
)

var constKindNames = [...]string{
	ConstInt:     "int",
	ConstUint:    "uint",
	ConstFloat:   "float",
	ConstBool:    "bool",
	ConstStr:     "str",
	ConstByteStr: "bytes",
	ConstStruct:  "struct",
	ConstTuple:   "tuple",
	ConstFn:      "fn",
	ConstFnPtr:   "fnptr",
}

func (k ConstKind) String() string {
	if int(k) < len(constKindNames) {
		return constKindNames[k]
	}
	return fmt.Sprintf("ConstKind(%d)", k)
}

// Const represents a MIR constant.
type Const struct {
	Kind ConstKind `msgpack:"kind"`

	IntValue   int64   `msgpack:"int,omitempty"`
	UintValue  uint64  `msgpack:"uint,omitempty"`
	FloatValue float64 `msgpack:"float,omitempty"`
	BoolValue  bool    `msgpack:"bool,omitempty"`
	StrValue   string  `msgpack:"str,omitempty"`
	BytesValue []byte  `msgpack:"bytes,omitempty"`
	Fn         FuncID  `msgpack:"fn,omitempty"`
}

// RValueKind distinguishes right-hand value kinds.
type RValueKind uint8

const (
	// RValueUse represents a use of an operand.
	RValueUse RValueKind = iota
	// RValueBinaryOp represents a binary operation.
	RValueBinaryOp
	// RValueUnaryOp represents a unary operation.
	RValueUnaryOp
	// RValueAggregate builds a struct, tuple or array from operands.
	RValueAggregate
	// RValueRef takes the address of a place.
	RValueRef
	// RValueCast converts an operand to another type. The operand is held in Use.
	RValueCast
)

// RValue represents a right-hand value in MIR.
type RValue struct {
	Kind RValueKind `msgpack:"kind"`

	Use       Operand   `msgpack:"use"`
	Binary    BinaryOp  `msgpack:"binary"`
	Unary     UnaryOp   `msgpack:"unary"`
	Aggregate Aggregate `msgpack:"aggregate"`
	Ref       Place     `msgpack:"ref"`
}

// BinOp enumerates binary operators.
type BinOp uint8

const (
	BinAdd BinOp = iota
	BinSub
	BinMul
	BinDiv
	BinRem
	BinBitXor
	BinBitAnd
	BinBitOr
	BinShl
	BinShr
	BinEq
	BinLt
	BinLe
	BinNe
	BinGe
	BinGt
)

var binOpNames = [...]string{
	BinAdd:    "add",
	BinSub:    "sub",
	BinMul:    "mul",
	BinDiv:    "div",
	BinRem:    "rem",
	BinBitXor: "xor",
	BinBitAnd: "and",
	BinBitOr:  "or",
	BinShl:    "shl",
	BinShr:    "shr",
	BinEq:     "eq",
	BinLt:     "lt",
	BinLe:     "le",
	BinNe:     "ne",
	BinGe:     "ge",
	BinGt:     "gt",
}

func (op BinOp) String() string {
	if int(op) < len(binOpNames) {
		return binOpNames[op]
	}
	return fmt.Sprintf("BinOp(%d)", op)
}

// IsComparison reports whether the operator yields a boolean.
func (op BinOp) IsComparison() bool {
	return op >= BinEq && op <= BinGt
}

// ParseBinOp maps an operator name back to its BinOp.
func ParseBinOp(s string) (BinOp, bool) {
	for i, name := range binOpNames {
		if name == s {
			return BinOp(i), true
		}
	}
	return 0, false
}

// UnOp enumerates unary operators.
type UnOp uint8

const (
	// UnNot is bitwise not.
	UnNot UnOp = iota
	// UnNeg is arithmetic negation.
	UnNeg
)

func (op UnOp) String() string {
	switch op {
	case UnNot:
		return "not"
	case UnNeg:
		return "neg"
	default:
		return fmt.Sprintf("UnOp(%d)", op)
	}
}

// BinaryOp represents a binary operation.
type BinaryOp struct {
	Op    BinOp   `msgpack:"op"`
	Left  Operand `msgpack:"left"`
	Right Operand `msgpack:"right"`
}

// UnaryOp represents a unary operation.
type UnaryOp struct {
	Op      UnOp    `msgpack:"op"`
	Operand Operand `msgpack:"operand"`
}

// Aggregate represents an aggregate construction.
type Aggregate struct {
	Elems []Operand `msgpack:"elems"`
}
