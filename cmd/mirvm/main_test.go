package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"mirvm/internal/vm"
)

func moduleFile(name string) string {
	return filepath.Join("..", "..", "testdata", "modules", name)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRunCommandPasses(t *testing.T) {
	out, err := execute(t, "run", moduleFile("basics.toml"))
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	for _, want := range []string{
		"Interpreting: arith\nTest passed!\n\n",
		"Interpreting: fact_5\nTest passed!\n\n",
		"Interpreting: neg_not\n=> Int(4)\n\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestRunCommandReportsFailures(t *testing.T) {
	out, err := execute(t, "run", moduleFile("failures.toml"))
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	if !strings.Contains(out, "Interpreting: after_failures\nTest passed!") {
		t.Errorf("later entry point did not run:\n%s", out)
	}
}

func TestCheckCommand(t *testing.T) {
	out, err := execute(t, "check", moduleFile("basics.toml"))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "ok, 6 funcs, 5 entry points") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestParseArg(t *testing.T) {
	tests := []struct {
		in   string
		want vm.Value
	}{
		{"42", vm.MakeInt(42)},
		{"-7", vm.MakeInt(-7)},
		{"true", vm.MakeBool(true)},
		{"false", vm.MakeBool(false)},
	}
	for _, tt := range tests {
		got, err := parseArg(tt.in)
		if err != nil || !got.Equal(tt.want) {
			t.Errorf("parseArg(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := parseArg("1.5"); err == nil {
		t.Error("parseArg(1.5) should fail")
	}
}

func TestResolveColor(t *testing.T) {
	tests := []struct {
		mode string
		tty  bool
		want bool
	}{
		{"on", false, true},
		{"off", true, false},
		{"auto", true, true},
		{"auto", false, false},
	}
	for _, tt := range tests {
		got, err := resolveColor(tt.mode, tt.tty)
		if err != nil || got != tt.want {
			t.Errorf("resolveColor(%q, %v) = %v, %v", tt.mode, tt.tty, got, err)
		}
	}
	if _, err := resolveColor("sometimes", true); err == nil {
		t.Error("expected error for unknown mode")
	}
}
