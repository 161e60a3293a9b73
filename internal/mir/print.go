package mir

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DumpOptions configures MIR module dumping.
type DumpOptions struct {
	// Attrs prints driver annotations next to each function header.
	Attrs bool
}

// DumpModule writes a human-readable representation of a MIR module.
func DumpModule(w io.Writer, m *Module, opts DumpOptions) error {
	if w == nil || m == nil {
		return nil
	}
	funcs := m.Sorted()
	if _, err := fmt.Fprintf(w, "funcs=%d\n", len(funcs)); err != nil {
		return err
	}
	for _, f := range funcs {
		if err := DumpFunc(w, f, opts); err != nil {
			return err
		}
	}
	return nil
}

// DumpFunc writes a single function body.
func DumpFunc(w io.Writer, f *Func, opts DumpOptions) error {
	if w == nil || f == nil {
		return nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "\nfn %s", f.Name)
	if opts.Attrs && f.Attrs.Run {
		sb.WriteString(" #[run")
		if f.Attrs.HasExpected {
			fmt.Fprintf(&sb, " expected=%q", f.Attrs.Expected)
		}
		sb.WriteString("]")
	}
	sb.WriteString(":\n")
	dumpLocals(&sb, "args", "arg", f.Args)
	dumpLocals(&sb, "vars", "var", f.Vars)
	dumpLocals(&sb, "temps", "tmp", f.Temps)

	for i := range f.Blocks {
		bb := &f.Blocks[i]
		fmt.Fprintf(&sb, "  bb%d:\n", bb.ID)
		for j := range bb.Stmts {
			fmt.Fprintf(&sb, "    %s\n", FormatStmt(&bb.Stmts[j]))
		}
		fmt.Fprintf(&sb, "    %s\n", FormatTerm(&bb.Term))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func dumpLocals(sb *strings.Builder, title, prefix string, locals []Local) {
	if len(locals) == 0 {
		return
	}
	fmt.Fprintf(sb, "  %s:\n", title)
	for i, l := range locals {
		name := l.Name
		if name == "" {
			name = "_"
		}
		fmt.Fprintf(sb, "    %s%d name=%s\n", prefix, i, name)
	}
}

// FormatStmt renders a statement on one line.
func FormatStmt(st *Stmt) string {
	if st == nil {
		return "<stmt?>"
	}
	switch st.Kind {
	case StmtAssign:
		return fmt.Sprintf("%s = %s", st.Assign.Dst, FormatRValue(&st.Assign.Src))
	case StmtDrop:
		return fmt.Sprintf("drop %s", st.Drop.Place)
	case StmtNop:
		return "nop"
	default:
		return fmt.Sprintf("<?stmt:%d>", st.Kind)
	}
}

// FormatRValue renders an rvalue.
func FormatRValue(rv *RValue) string {
	switch rv.Kind {
	case RValueUse:
		return FormatOperand(&rv.Use)
	case RValueBinaryOp:
		return fmt.Sprintf("%s(%s, %s)", rv.Binary.Op, FormatOperand(&rv.Binary.Left), FormatOperand(&rv.Binary.Right))
	case RValueUnaryOp:
		return fmt.Sprintf("%s(%s)", rv.Unary.Op, FormatOperand(&rv.Unary.Operand))
	case RValueAggregate:
		return fmt.Sprintf("aggregate(%s)", FormatOperands(rv.Aggregate.Elems))
	case RValueRef:
		return fmt.Sprintf("&%s", rv.Ref)
	case RValueCast:
		return fmt.Sprintf("cast(%s)", FormatOperand(&rv.Use))
	default:
		return fmt.Sprintf("<?rvalue:%d>", rv.Kind)
	}
}

// FormatOperand renders an operand.
func FormatOperand(op *Operand) string {
	switch op.Kind {
	case OperandConsume:
		return op.Place.String()
	case OperandConst:
		return "const " + FormatConst(&op.Const)
	default:
		return fmt.Sprintf("<?op:%d>", op.Kind)
	}
}

// FormatOperands renders a comma separated operand list.
func FormatOperands(ops []Operand) string {
	parts := make([]string, 0, len(ops))
	for i := range ops {
		parts = append(parts, FormatOperand(&ops[i]))
	}
	return strings.Join(parts, ", ")
}

// FormatConst renders a constant as "<kind> <payload>".
func FormatConst(c *Const) string {
	switch c.Kind {
	case ConstInt:
		return "int " + strconv.FormatInt(c.IntValue, 10)
	case ConstUint:
		return "uint " + strconv.FormatUint(c.UintValue, 10)
	case ConstFloat:
		return "float " + strconv.FormatFloat(c.FloatValue, 'g', -1, 64)
	case ConstBool:
		return "bool " + strconv.FormatBool(c.BoolValue)
	case ConstStr:
		return "str " + strconv.Quote(c.StrValue)
	case ConstByteStr:
		return "bytes " + strconv.Quote(string(c.BytesValue))
	case ConstFn:
		return fmt.Sprintf("fn#%d", c.Fn)
	case ConstFnPtr:
		return fmt.Sprintf("fnptr#%d", c.Fn)
	default:
		return c.Kind.String()
	}
}

// FormatTerm renders a terminator.
func FormatTerm(term *Terminator) string {
	switch term.Kind {
	case TermReturn:
		return "return"
	case TermGoto:
		return fmt.Sprintf("goto bb%d", term.Goto.Target)
	case TermIf:
		return fmt.Sprintf("if %s then bb%d else bb%d", FormatOperand(&term.If.Cond), term.If.Then, term.If.Else)
	case TermSwitchInt:
		sw := &term.SwitchInt
		arms := make([]string, 0, len(sw.Values))
		for i := range sw.Values {
			target := NoBlockID
			if i < len(sw.Targets) {
				target = sw.Targets[i]
			}
			arms = append(arms, fmt.Sprintf("%s => bb%d", FormatConst(&sw.Values[i]), target))
		}
		return fmt.Sprintf("switch_int %s [%s]", sw.Discr, strings.Join(arms, ", "))
	case TermCall:
		c := &term.Call
		return fmt.Sprintf("%s = call %s(%s) -> bb%d", c.Dst, FormatOperand(&c.Func), FormatOperands(c.Args), c.Target)
	case TermDiverge:
		return "diverge"
	case TermPanic:
		return fmt.Sprintf("panic -> bb%d", term.Panic.Target)
	case TermUnreachable:
		return "unreachable"
	case TermNone:
		return "<unterminated>"
	default:
		return fmt.Sprintf("<?term:%d>", term.Kind)
	}
}
