package mir_test

import (
	"strings"
	"testing"

	"mirvm/internal/mir"
)

// countdown(n): loops n down to zero through a goto back edge.
func countdown() *mir.Func {
	b := mir.NewBuilder("countdown", 1, 1, 1)
	entry := b.NewBlock()
	head := b.NewBlock()
	body := b.NewBlock()
	exit := b.NewBlock()

	b.StartBlock(entry)
	b.Assign(mir.VarPlace(0), mir.Use(mir.Copy(mir.ArgPlace(0))))
	b.Goto(head)

	b.StartBlock(head)
	b.Assign(mir.TempPlace(0), mir.Binary(mir.BinGt, mir.Copy(mir.VarPlace(0)), mir.Int(0)))
	b.If(mir.Copy(mir.TempPlace(0)), body, exit)

	b.StartBlock(body)
	b.Assign(mir.VarPlace(0), mir.Binary(mir.BinSub, mir.Copy(mir.VarPlace(0)), mir.Int(1)))
	b.Goto(head)

	b.StartBlock(exit)
	b.Assign(mir.ReturnPlace(), mir.Use(mir.Copy(mir.VarPlace(0))))
	b.Return()
	return b.Func()
}

func TestValidate_ValidFunctions(t *testing.T) {
	mod := mir.NewModule()
	mod.Add(countdown())
	if err := mir.Validate(mod); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name  string
		build func() *mir.Func
		want  string
	}{
		{
			name: "unterminated_block",
			build: func() *mir.Func {
				b := mir.NewBuilder("f", 0, 0, 0)
				b.StartBlock(b.NewBlock())
				return b.Func()
			},
			want: "bb0: unterminated block",
		},
		{
			name: "missing_entry",
			build: func() *mir.Func {
				return &mir.Func{Name: "f", Entry: 3}
			},
			want: "entry block bb3 does not exist",
		},
		{
			name: "bad_if_target",
			build: func() *mir.Func {
				b := mir.NewBuilder("f", 0, 0, 0)
				b.StartBlock(b.NewBlock())
				b.If(mir.Bool(true), 0, 7)
				return b.Func()
			},
			want: "bb0: if else target bb7 does not exist",
		},
		{
			name: "switch_lengths",
			build: func() *mir.Func {
				b := mir.NewBuilder("f", 0, 1, 0)
				b.StartBlock(b.NewBlock())
				b.SwitchInt(mir.VarPlace(0), []mir.Const{mir.IntConst(0), mir.IntConst(1)}, []mir.BlockID{0})
				return b.Func()
			},
			want: "bb0: switch_int has 2 values but 1 targets",
		},
		{
			name: "arg_out_of_range",
			build: func() *mir.Func {
				b := mir.NewBuilder("f", 1, 0, 0)
				b.StartBlock(b.NewBlock())
				b.Assign(mir.ReturnPlace(), mir.Use(mir.Copy(mir.ArgPlace(1))))
				b.Return()
				return b.Func()
			},
			want: "bb0:0: arg1 does not exist",
		},
		{
			name: "call_dest_out_of_range",
			build: func() *mir.Func {
				b := mir.NewBuilder("f", 0, 0, 1)
				entry := b.NewBlock()
				next := b.NewBlock()
				b.StartBlock(entry)
				b.Call(mir.TempPlace(4), mir.FnRef(0), nil, next)
				b.StartBlock(next)
				b.Return()
				return b.Func()
			},
			want: "bb0:term: tmp4 does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod := mir.NewModule()
			mod.Add(tt.build())
			err := mir.Validate(mod)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("got %q, want it to contain %q", err, tt.want)
			}
			if !strings.HasPrefix(err.Error(), "function f: ") {
				t.Fatalf("error not prefixed with the function name: %q", err)
			}
		})
	}
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	b := mir.NewBuilder("f", 0, 0, 0)
	b.StartBlock(b.NewBlock())
	b.Assign(mir.VarPlace(2), mir.Use(mir.Int(1)))
	b.Goto(5)

	err := mir.ValidateFunc(b.Func())
	if err == nil {
		t.Fatal("expected errors")
	}
	for _, want := range []string{"goto target bb5", "var2 does not exist"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("missing %q in %q", want, err)
		}
	}
}

func TestBuilderIgnoresStatementsAfterTerminator(t *testing.T) {
	b := mir.NewBuilder("f", 0, 0, 0)
	b.StartBlock(b.NewBlock())
	b.Return()
	b.Assign(mir.ReturnPlace(), mir.Use(mir.Int(1)))
	b.Goto(0)

	bb := b.Func().Block(0)
	if len(bb.Stmts) != 0 || bb.Term.Kind != mir.TermReturn {
		t.Fatalf("block = %+v", bb)
	}
}
