package mir

type TermKind uint8

const (
	TermNone TermKind = iota
	TermReturn
	TermGoto
	TermIf
	TermSwitchInt
	TermCall
	TermDiverge
	TermPanic
	TermUnreachable
)

func (k TermKind) String() string {
	switch k {
	case TermNone:
		return "none"
	case TermReturn:
		return "return"
	case TermGoto:
		return "goto"
	case TermIf:
		return "if"
	case TermSwitchInt:
		return "switch_int"
	case TermCall:
		return "call"
	case TermDiverge:
		return "diverge"
	case TermPanic:
		return "panic"
	case TermUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

type Terminator struct {
	Kind TermKind `msgpack:"kind"`

	Goto      GotoTerm      `msgpack:"goto"`
	If        IfTerm        `msgpack:"if"`
	SwitchInt SwitchIntTerm `msgpack:"switch_int"`
	Call      CallTerm      `msgpack:"call"`
	Panic     PanicTerm     `msgpack:"panic"`
}

type GotoTerm struct {
	Target BlockID `msgpack:"target"`
}

type IfTerm struct {
	Cond Operand `msgpack:"cond"`
	Then BlockID `msgpack:"then"`
	Else BlockID `msgpack:"else"`
}

// SwitchIntTerm jumps to Targets[i] for the first Values[i] equal to the
// current value of Discr. There is no fallback arm.
type SwitchIntTerm struct {
	Discr   Place     `msgpack:"discr"`
	Values  []Const   `msgpack:"values"`
	Targets []BlockID `msgpack:"targets"`
}

type CallTerm struct {
	Dst    Place     `msgpack:"dst"`
	Func   Operand   `msgpack:"func"`
	Args   []Operand `msgpack:"args"`
	Target BlockID   `msgpack:"target"`
}

type PanicTerm struct {
	Target BlockID `msgpack:"target"`
}
