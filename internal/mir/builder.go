package mir

import (
	"fmt"

	"fortio.org/safecast"
)

// Builder assembles a Func block by block. Statements emitted after the
// current block has been terminated are ignored.
type Builder struct {
	f   *Func
	cur BlockID
}

// NewBuilder starts a function with the given declaration counts.
func NewBuilder(name string, args, vars, temps int) *Builder {
	f := &Func{
		ID:    NoFuncID,
		Name:  name,
		Args:  make([]Local, args),
		Vars:  make([]Local, vars),
		Temps: make([]Local, temps),
		Entry: EntryBlock,
	}
	return &Builder{f: f, cur: NoBlockID}
}

// Func returns the function under construction.
func (b *Builder) Func() *Func { return b.f }

// NewBlock appends an empty block and returns its id.
func (b *Builder) NewBlock() BlockID {
	raw, err := safecast.Conv[int32](len(b.f.Blocks))
	if err != nil {
		panic(fmt.Errorf("mir: block id overflow: %w", err))
	}
	id := BlockID(raw)
	b.f.Blocks = append(b.f.Blocks, Block{ID: id, Term: Terminator{Kind: TermNone}})
	return id
}

// StartBlock makes id the block receiving subsequent statements.
func (b *Builder) StartBlock(id BlockID) {
	b.cur = id
}

func (b *Builder) curBlock() *Block {
	return b.f.Block(b.cur)
}

func (b *Builder) emit(st *Stmt) {
	bb := b.curBlock()
	if bb == nil || bb.Terminated() {
		return
	}
	bb.Stmts = append(bb.Stmts, *st)
}

// SetTerm terminates the current block.
func (b *Builder) SetTerm(t *Terminator) {
	bb := b.curBlock()
	if bb == nil || bb.Terminated() || t == nil {
		return
	}
	bb.Term = *t
}

// Assign emits dst = rv.
func (b *Builder) Assign(dst Place, rv RValue) {
	b.emit(&Stmt{Kind: StmtAssign, Assign: AssignStmt{Dst: dst, Src: rv}})
}

// Drop emits drop(p).
func (b *Builder) Drop(p Place) {
	b.emit(&Stmt{Kind: StmtDrop, Drop: DropStmt{Place: p}})
}

func (b *Builder) Return() {
	b.SetTerm(&Terminator{Kind: TermReturn})
}

func (b *Builder) Goto(target BlockID) {
	b.SetTerm(&Terminator{Kind: TermGoto, Goto: GotoTerm{Target: target}})
}

func (b *Builder) If(cond Operand, then, els BlockID) {
	b.SetTerm(&Terminator{Kind: TermIf, If: IfTerm{Cond: cond, Then: then, Else: els}})
}

func (b *Builder) SwitchInt(discr Place, values []Const, targets []BlockID) {
	b.SetTerm(&Terminator{Kind: TermSwitchInt, SwitchInt: SwitchIntTerm{Discr: discr, Values: values, Targets: targets}})
}

func (b *Builder) Call(dst Place, fn Operand, args []Operand, target BlockID) {
	b.SetTerm(&Terminator{Kind: TermCall, Call: CallTerm{Dst: dst, Func: fn, Args: args, Target: target}})
}

// Operand and rvalue shorthands.

func Copy(p Place) Operand    { return Operand{Kind: OperandConsume, Place: p} }
func ConstOp(c Const) Operand { return Operand{Kind: OperandConst, Const: c} }
func IntConst(v int64) Const  { return Const{Kind: ConstInt, IntValue: v} }
func BoolConst(v bool) Const  { return Const{Kind: ConstBool, BoolValue: v} }
func FnConst(id FuncID) Const { return Const{Kind: ConstFn, Fn: id} }
func Int(v int64) Operand     { return ConstOp(IntConst(v)) }
func Bool(v bool) Operand     { return ConstOp(BoolConst(v)) }
func FnRef(id FuncID) Operand { return ConstOp(FnConst(id)) }
func Use(op Operand) RValue   { return RValue{Kind: RValueUse, Use: op} }

func Binary(op BinOp, l, r Operand) RValue {
	return RValue{Kind: RValueBinaryOp, Binary: BinaryOp{Op: op, Left: l, Right: r}}
}

func Unary(op UnOp, x Operand) RValue {
	return RValue{Kind: RValueUnaryOp, Unary: UnaryOp{Op: op, Operand: x}}
}
