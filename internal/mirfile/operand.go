package mirfile

import (
	"fmt"
	"strconv"
	"strings"

	"mirvm/internal/mir"
)

type operandParser struct {
	mod *mir.Module
}

var placePrefixes = []struct {
	prefix string
	kind   mir.PlaceKind
}{
	{"arg", mir.PlaceArg},
	{"var", mir.PlaceVar},
	{"tmp", mir.PlaceTemp},
	{"static", mir.PlaceStatic},
}

// parsePlace accepts "ret", "argN", "varN", "tmpN" and "staticN".
func parsePlace(s string) (mir.Place, error) {
	s = strings.TrimSpace(s)
	if s == "ret" {
		return mir.ReturnPlace(), nil
	}
	for _, pp := range placePrefixes {
		rest, ok := strings.CutPrefix(s, pp.prefix)
		if !ok || rest == "" {
			continue
		}
		n, err := strconv.ParseUint(rest, 10, 32)
		if err != nil {
			return mir.Place{}, fmt.Errorf("bad place %q: %w", s, err)
		}
		return mir.Place{Kind: pp.kind, Index: uint32(n)}, nil
	}
	return mir.Place{}, fmt.Errorf("bad place %q", s)
}

func (p *operandParser) operands(ss []string) ([]mir.Operand, error) {
	out := make([]mir.Operand, len(ss))
	for i, s := range ss {
		op, err := p.operand(s)
		if err != nil {
			return nil, err
		}
		out[i] = op
	}
	return out, nil
}

// operand parses either a place or a constant.
func (p *operandParser) operand(s string) (mir.Operand, error) {
	s = strings.TrimSpace(s)
	if !strings.ContainsRune(s, ' ') {
		place, err := parsePlace(s)
		if err != nil {
			return mir.Operand{}, err
		}
		return mir.Copy(place), nil
	}
	c, err := p.constant(s)
	if err != nil {
		return mir.Operand{}, err
	}
	return mir.ConstOp(c), nil
}

// constant parses "<kind> <payload>", the same shape mir.FormatConst emits.
func (p *operandParser) constant(s string) (mir.Const, error) {
	kind, payload, ok := strings.Cut(strings.TrimSpace(s), " ")
	if !ok {
		return mir.Const{}, fmt.Errorf("bad constant %q", s)
	}
	payload = strings.TrimSpace(payload)
	var err error
	c := mir.Const{}
	switch kind {
	case "int":
		c.Kind = mir.ConstInt
		c.IntValue, err = strconv.ParseInt(payload, 0, 64)
	case "uint":
		c.Kind = mir.ConstUint
		c.UintValue, err = strconv.ParseUint(payload, 0, 64)
	case "float":
		c.Kind = mir.ConstFloat
		c.FloatValue, err = strconv.ParseFloat(payload, 64)
	case "bool":
		c.Kind = mir.ConstBool
		c.BoolValue, err = strconv.ParseBool(payload)
	case "str":
		c.Kind = mir.ConstStr
		c.StrValue, err = strconv.Unquote(payload)
	case "bytes":
		c.Kind = mir.ConstByteStr
		var text string
		text, err = strconv.Unquote(payload)
		c.BytesValue = []byte(text)
	case "fn", "fnptr":
		c.Kind = mir.ConstFn
		if kind == "fnptr" {
			c.Kind = mir.ConstFnPtr
		}
		f, found := p.mod.Lookup(payload)
		if !found {
			return mir.Const{}, fmt.Errorf("unknown function %q", payload)
		}
		c.Fn = f.ID
	default:
		return mir.Const{}, fmt.Errorf("unknown constant kind %q", kind)
	}
	if err != nil {
		return mir.Const{}, fmt.Errorf("bad %s constant %q: %w", kind, payload, err)
	}
	return c, nil
}
