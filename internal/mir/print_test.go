package mir_test

import (
	"bytes"
	"testing"

	"mirvm/internal/mir"
)

func TestDumpModule(t *testing.T) {
	mod := mir.NewModule()
	f := countdown()
	f.Args[0].Name = "n"
	f.Attrs = mir.Attrs{Run: true, Expected: "Int(0)", HasExpected: true}
	mod.Add(f)

	var buf bytes.Buffer
	if err := mir.DumpModule(&buf, mod, mir.DumpOptions{Attrs: true}); err != nil {
		t.Fatalf("dump: %v", err)
	}

	want := `funcs=1

fn countdown #[run expected="Int(0)"]:
  args:
    arg0 name=n
  vars:
    var0 name=_
  temps:
    tmp0 name=_
  bb0:
    var0 = arg0
    goto bb1
  bb1:
    tmp0 = gt(var0, const int 0)
    if tmp0 then bb2 else bb3
  bb2:
    var0 = sub(var0, const int 1)
    goto bb1
  bb3:
    ret = var0
    return
`
	if got := buf.String(); got != want {
		t.Fatalf("dump mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatTerm(t *testing.T) {
	tests := []struct {
		term mir.Terminator
		want string
	}{
		{
			mir.Terminator{Kind: mir.TermSwitchInt, SwitchInt: mir.SwitchIntTerm{
				Discr:   mir.VarPlace(0),
				Values:  []mir.Const{mir.IntConst(0), mir.IntConst(1)},
				Targets: []mir.BlockID{1, 2},
			}},
			"switch_int var0 [int 0 => bb1, int 1 => bb2]",
		},
		{
			mir.Terminator{Kind: mir.TermCall, Call: mir.CallTerm{
				Dst:    mir.TempPlace(2),
				Func:   mir.FnRef(3),
				Args:   []mir.Operand{mir.Copy(mir.TempPlace(1)), mir.Bool(false)},
				Target: 4,
			}},
			"tmp2 = call const fn#3(tmp1, const bool false) -> bb4",
		},
		{mir.Terminator{Kind: mir.TermPanic, Panic: mir.PanicTerm{Target: 1}}, "panic -> bb1"},
		{mir.Terminator{Kind: mir.TermNone}, "<unterminated>"},
	}
	for _, tt := range tests {
		if got := mir.FormatTerm(&tt.term); got != tt.want {
			t.Errorf("FormatTerm = %q, want %q", got, tt.want)
		}
	}
}

func TestFormatConst(t *testing.T) {
	tests := []struct {
		c    mir.Const
		want string
	}{
		{mir.IntConst(-3), "int -3"},
		{mir.Const{Kind: mir.ConstFloat, FloatValue: 1.5}, "float 1.5"},
		{mir.Const{Kind: mir.ConstStr, StrValue: "a b"}, `str "a b"`},
		{mir.Const{Kind: mir.ConstFnPtr, Fn: 0}, "fnptr#0"},
	}
	for _, tt := range tests {
		if got := mir.FormatConst(&tt.c); got != tt.want {
			t.Errorf("FormatConst = %q, want %q", got, tt.want)
		}
	}
}
