package mir

type Block struct {
	ID    BlockID    `msgpack:"id"`
	Stmts []Stmt     `msgpack:"stmts"`
	Term  Terminator `msgpack:"term"`
}

func (b *Block) Terminated() bool {
	if b == nil {
		return true
	}
	return b.Term.Kind != TermNone
}
