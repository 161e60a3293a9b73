package mir

// Func is the CFG body of one function.
//
// The argument, variable and temporary declarations only matter for their
// counts and order: together with the return slot they define the layout of
// an activation record.
type Func struct {
	ID   FuncID `msgpack:"id"`
	Name string `msgpack:"name"`

	Args  []Local `msgpack:"args"`
	Vars  []Local `msgpack:"vars"`
	Temps []Local `msgpack:"temps"`

	Blocks []Block `msgpack:"blocks"`
	Entry  BlockID `msgpack:"entry"`

	Attrs Attrs `msgpack:"attrs"`
}

// Attrs carries driver-level annotations. The VM never reads them.
type Attrs struct {
	// Run marks the function as an entry point.
	Run bool `msgpack:"run"`
	// Expected is the textual result the entry point should produce.
	Expected    string `msgpack:"expected"`
	HasExpected bool   `msgpack:"has_expected"`
}

// Block returns the block with the given id, or nil.
func (f *Func) Block(id BlockID) *Block {
	if f == nil || id < 0 || int(id) >= len(f.Blocks) {
		return nil
	}
	return &f.Blocks[id]
}
