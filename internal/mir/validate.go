package mir

import (
	"errors"
	"fmt"
)

// Validate checks MIR module invariants.
// Returns error if any invariant is violated.
func Validate(m *Module) error {
	if m == nil {
		return nil
	}
	var errs []error
	for _, f := range m.Sorted() {
		if err := ValidateFunc(f); err != nil {
			errs = append(errs, fmt.Errorf("function %s: %w", f.Name, err))
		}
	}
	return errors.Join(errs...)
}

// ValidateFunc checks the invariants of a single body.
func ValidateFunc(f *Func) error {
	if f == nil {
		return nil
	}

	var errs []error

	if f.Block(f.Entry) == nil {
		errs = append(errs, fmt.Errorf("entry block bb%d does not exist", f.Entry))
	}

	// 1. Check all blocks terminated
	if err := validateBlocksTerminated(f); err != nil {
		errs = append(errs, err)
	}

	// 2. Check block targets exist
	if err := validateBlockTargets(f); err != nil {
		errs = append(errs, err)
	}

	// 3. Check places stay inside the declared layout
	if err := validatePlaces(f); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// validateBlocksTerminated checks that every block ends with a terminator.
func validateBlocksTerminated(f *Func) error {
	var errs []error
	for i := range f.Blocks {
		if f.Blocks[i].ID != BlockID(i) {
			errs = append(errs, fmt.Errorf("bb%d: block id mismatch (has bb%d)", i, f.Blocks[i].ID))
		}
		if f.Blocks[i].Term.Kind == TermNone {
			errs = append(errs, fmt.Errorf("bb%d: unterminated block", i))
		}
	}
	return errors.Join(errs...)
}

// validateBlockTargets checks that all block target IDs exist.
func validateBlockTargets(f *Func) error {
	var errs []error

	check := func(bb int, what string, id BlockID) {
		if f.Block(id) == nil {
			errs = append(errs, fmt.Errorf("bb%d: %s target bb%d does not exist", bb, what, id))
		}
	}

	for i := range f.Blocks {
		term := &f.Blocks[i].Term
		switch term.Kind {
		case TermGoto:
			check(i, "goto", term.Goto.Target)
		case TermIf:
			check(i, "if then", term.If.Then)
			check(i, "if else", term.If.Else)
		case TermSwitchInt:
			sw := &term.SwitchInt
			if len(sw.Values) != len(sw.Targets) {
				errs = append(errs, fmt.Errorf("bb%d: switch_int has %d values but %d targets", i, len(sw.Values), len(sw.Targets)))
			}
			for j, t := range sw.Targets {
				check(i, fmt.Sprintf("switch_int case %d", j), t)
			}
		case TermCall:
			check(i, "call", term.Call.Target)
		case TermPanic:
			check(i, "panic", term.Panic.Target)
		}
	}
	return errors.Join(errs...)
}

// validatePlaces checks that every place index fits its declared section.
func validatePlaces(f *Func) error {
	var errs []error

	checkPlace := func(p Place, context string) {
		var n int
		switch p.Kind {
		case PlaceReturn, PlaceStatic:
			return
		case PlaceArg:
			n = len(f.Args)
		case PlaceVar:
			n = len(f.Vars)
		case PlaceTemp:
			n = len(f.Temps)
		default:
			errs = append(errs, fmt.Errorf("%s: unknown place kind %d", context, p.Kind))
			return
		}
		if int64(p.Index) >= int64(n) {
			errs = append(errs, fmt.Errorf("%s: %s does not exist", context, p))
		}
	}

	checkOperand := func(op Operand, context string) {
		if op.Kind == OperandConsume {
			checkPlace(op.Place, context)
		}
	}

	for i := range f.Blocks {
		bb := &f.Blocks[i]
		for j := range bb.Stmts {
			st := &bb.Stmts[j]
			ctx := fmt.Sprintf("bb%d:%d", i, j)
			switch st.Kind {
			case StmtAssign:
				checkPlace(st.Assign.Dst, ctx)
				src := &st.Assign.Src
				switch src.Kind {
				case RValueUse:
					checkOperand(src.Use, ctx)
				case RValueBinaryOp:
					checkOperand(src.Binary.Left, ctx)
					checkOperand(src.Binary.Right, ctx)
				case RValueUnaryOp:
					checkOperand(src.Unary.Operand, ctx)
				case RValueAggregate:
					for _, el := range src.Aggregate.Elems {
						checkOperand(el, ctx)
					}
				case RValueRef:
					checkPlace(src.Ref, ctx)
				}
			case StmtDrop:
				checkPlace(st.Drop.Place, ctx)
			}
		}
		ctx := fmt.Sprintf("bb%d:term", i)
		switch bb.Term.Kind {
		case TermIf:
			checkOperand(bb.Term.If.Cond, ctx)
		case TermSwitchInt:
			checkPlace(bb.Term.SwitchInt.Discr, ctx)
		case TermCall:
			checkPlace(bb.Term.Call.Dst, ctx)
			checkOperand(bb.Term.Call.Func, ctx)
			for _, a := range bb.Term.Call.Args {
				checkOperand(a, ctx)
			}
		}
	}
	return errors.Join(errs...)
}
