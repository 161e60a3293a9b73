package mirfile

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"mirvm/internal/mir"
)

type fileDoc struct {
	Funcs []funcDoc `toml:"func"`
}

type funcDoc struct {
	Name     string     `toml:"name"`
	Args     []string   `toml:"args"`
	Vars     []string   `toml:"vars"`
	Temps    []string   `toml:"temps"`
	Run      bool       `toml:"run"`
	Expected *string    `toml:"expected"`
	Entry    int        `toml:"entry"`
	Blocks   []blockDoc `toml:"block"`
}

type blockDoc struct {
	Stmts []stmtDoc `toml:"stmts"`
	Term  termDoc   `toml:"term"`
}

type stmtDoc struct {
	Assign string   `toml:"assign"`
	Op     string   `toml:"op"`
	Args   []string `toml:"args"`
	Drop   string   `toml:"drop"`
	Nop    bool     `toml:"nop"`
}

type termDoc struct {
	Kind    string   `toml:"kind"`
	Target  int      `toml:"target"`
	Cond    string   `toml:"cond"`
	Then    int      `toml:"then"`
	Else    int      `toml:"else"`
	Discr   string   `toml:"discr"`
	Values  []string `toml:"values"`
	Targets []int    `toml:"targets"`
	Dest    string   `toml:"dest"`
	Callee  string   `toml:"callee"`
	Args    []string `toml:"args"`
}

// DecodeTOML parses a TOML module description.
func DecodeTOML(r io.Reader) (*mir.Module, error) {
	var doc fileDoc
	meta, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return assemble(&doc)
}

// assemble registers every function first so bodies may reference functions
// declared after them.
func assemble(doc *fileDoc) (*mir.Module, error) {
	mod := mir.NewModule()
	for i := range doc.Funcs {
		fd := &doc.Funcs[i]
		if strings.TrimSpace(fd.Name) == "" {
			return nil, fmt.Errorf("func #%d: missing name", i)
		}
		if _, dup := mod.ByName[fd.Name]; dup {
			return nil, fmt.Errorf("func %s: declared twice", fd.Name)
		}
		mod.Add(&mir.Func{Name: fd.Name})
	}

	var errs []error
	for i := range doc.Funcs {
		fd := &doc.Funcs[i]
		fn, _ := mod.Lookup(fd.Name)
		if err := assembleFunc(mod, fn, fd); err != nil {
			errs = append(errs, fmt.Errorf("func %s: %w", fd.Name, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return mod, nil
}

func locals(names []string) []mir.Local {
	out := make([]mir.Local, len(names))
	for i, n := range names {
		out[i] = mir.Local{Name: n}
	}
	return out
}

func assembleFunc(mod *mir.Module, fn *mir.Func, fd *funcDoc) error {
	fn.Args = locals(fd.Args)
	fn.Vars = locals(fd.Vars)
	fn.Temps = locals(fd.Temps)
	fn.Attrs.Run = fd.Run
	if fd.Expected != nil {
		fn.Attrs.Expected = *fd.Expected
		fn.Attrs.HasExpected = true
	}
	entry, err := blockID(fd.Entry)
	if err != nil {
		return fmt.Errorf("entry: %w", err)
	}
	fn.Entry = entry

	p := &operandParser{mod: mod}
	fn.Blocks = make([]mir.Block, len(fd.Blocks))
	for i := range fd.Blocks {
		bd := &fd.Blocks[i]
		bb := &fn.Blocks[i]
		if bb.ID, err = blockID(i); err != nil {
			return err
		}
		bb.Stmts = make([]mir.Stmt, 0, len(bd.Stmts))
		for j := range bd.Stmts {
			st, err := p.stmt(&bd.Stmts[j])
			if err != nil {
				return fmt.Errorf("bb%d: stmt %d: %w", i, j, err)
			}
			bb.Stmts = append(bb.Stmts, st)
		}
		if bb.Term, err = p.term(&bd.Term); err != nil {
			return fmt.Errorf("bb%d: term: %w", i, err)
		}
	}
	return mir.ValidateFunc(fn)
}

func blockID(n int) (mir.BlockID, error) {
	raw, err := safecast.Conv[int32](n)
	if err != nil {
		return mir.NoBlockID, fmt.Errorf("block index %d: %w", n, err)
	}
	return mir.BlockID(raw), nil
}

func blockIDs(ns []int) ([]mir.BlockID, error) {
	out := make([]mir.BlockID, len(ns))
	for i, n := range ns {
		id, err := blockID(n)
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}

func (p *operandParser) stmt(sd *stmtDoc) (mir.Stmt, error) {
	switch {
	case sd.Nop:
		return mir.Stmt{Kind: mir.StmtNop}, nil
	case sd.Drop != "":
		place, err := parsePlace(sd.Drop)
		if err != nil {
			return mir.Stmt{}, err
		}
		return mir.Stmt{Kind: mir.StmtDrop, Drop: mir.DropStmt{Place: place}}, nil
	case sd.Assign != "":
		dst, err := parsePlace(sd.Assign)
		if err != nil {
			return mir.Stmt{}, err
		}
		rv, err := p.rvalue(sd.Op, sd.Args)
		if err != nil {
			return mir.Stmt{}, err
		}
		return mir.Stmt{Kind: mir.StmtAssign, Assign: mir.AssignStmt{Dst: dst, Src: rv}}, nil
	default:
		return mir.Stmt{}, errors.New("statement needs one of assign, drop or nop")
	}
}

func (p *operandParser) rvalue(op string, args []string) (mir.RValue, error) {
	ops, err := p.operands(args)
	if err != nil {
		return mir.RValue{}, err
	}
	arity := func(n int) error {
		if len(ops) != n {
			return fmt.Errorf("%s takes %d operands, got %d", op, n, len(ops))
		}
		return nil
	}
	switch op {
	case "use", "":
		if err := arity(1); err != nil {
			return mir.RValue{}, err
		}
		return mir.Use(ops[0]), nil
	case "not", "neg":
		if err := arity(1); err != nil {
			return mir.RValue{}, err
		}
		un := mir.UnNot
		if op == "neg" {
			un = mir.UnNeg
		}
		return mir.Unary(un, ops[0]), nil
	case "cast":
		if err := arity(1); err != nil {
			return mir.RValue{}, err
		}
		return mir.RValue{Kind: mir.RValueCast, Use: ops[0]}, nil
	case "aggregate":
		return mir.RValue{Kind: mir.RValueAggregate, Aggregate: mir.Aggregate{Elems: ops}}, nil
	case "ref":
		if err := arity(1); err != nil {
			return mir.RValue{}, err
		}
		if ops[0].Kind != mir.OperandConsume {
			return mir.RValue{}, errors.New("ref needs a place")
		}
		return mir.RValue{Kind: mir.RValueRef, Ref: ops[0].Place}, nil
	}
	bin, ok := mir.ParseBinOp(op)
	if !ok {
		return mir.RValue{}, fmt.Errorf("unknown op %q", op)
	}
	if err := arity(2); err != nil {
		return mir.RValue{}, err
	}
	return mir.Binary(bin, ops[0], ops[1]), nil
}

func (p *operandParser) term(td *termDoc) (mir.Terminator, error) {
	switch td.Kind {
	case "return":
		return mir.Terminator{Kind: mir.TermReturn}, nil
	case "goto":
		target, err := blockID(td.Target)
		if err != nil {
			return mir.Terminator{}, err
		}
		return mir.Terminator{Kind: mir.TermGoto, Goto: mir.GotoTerm{Target: target}}, nil
	case "if":
		cond, err := p.operand(td.Cond)
		if err != nil {
			return mir.Terminator{}, err
		}
		then, err := blockID(td.Then)
		if err != nil {
			return mir.Terminator{}, err
		}
		els, err := blockID(td.Else)
		if err != nil {
			return mir.Terminator{}, err
		}
		return mir.Terminator{Kind: mir.TermIf, If: mir.IfTerm{Cond: cond, Then: then, Else: els}}, nil
	case "switch_int":
		discr, err := parsePlace(td.Discr)
		if err != nil {
			return mir.Terminator{}, err
		}
		values := make([]mir.Const, len(td.Values))
		for i, v := range td.Values {
			if values[i], err = p.constant(v); err != nil {
				return mir.Terminator{}, fmt.Errorf("value %d: %w", i, err)
			}
		}
		targets, err := blockIDs(td.Targets)
		if err != nil {
			return mir.Terminator{}, err
		}
		return mir.Terminator{Kind: mir.TermSwitchInt, SwitchInt: mir.SwitchIntTerm{
			Discr: discr, Values: values, Targets: targets,
		}}, nil
	case "call":
		dst, err := parsePlace(td.Dest)
		if err != nil {
			return mir.Terminator{}, err
		}
		callee, err := p.operand(td.Callee)
		if err != nil {
			return mir.Terminator{}, err
		}
		args, err := p.operands(td.Args)
		if err != nil {
			return mir.Terminator{}, err
		}
		target, err := blockID(td.Target)
		if err != nil {
			return mir.Terminator{}, err
		}
		return mir.Terminator{Kind: mir.TermCall, Call: mir.CallTerm{
			Dst: dst, Func: callee, Args: args, Target: target,
		}}, nil
	case "diverge":
		return mir.Terminator{Kind: mir.TermDiverge}, nil
	case "panic":
		target, err := blockID(td.Target)
		if err != nil {
			return mir.Terminator{}, err
		}
		return mir.Terminator{Kind: mir.TermPanic, Panic: mir.PanicTerm{Target: target}}, nil
	case "unreachable":
		return mir.Terminator{Kind: mir.TermUnreachable}, nil
	case "":
		return mir.Terminator{}, errors.New("missing terminator kind")
	default:
		return mir.Terminator{}, fmt.Errorf("unknown terminator kind %q", td.Kind)
	}
}
