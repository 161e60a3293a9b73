package mir

import (
	"cmp"
	"slices"
)

type Module struct {
	Funcs  map[FuncID]*Func  `msgpack:"funcs"`
	ByName map[string]FuncID `msgpack:"by_name"`
}

func NewModule() *Module {
	return &Module{
		Funcs:  make(map[FuncID]*Func),
		ByName: make(map[string]FuncID),
	}
}

// Func returns the body registered under id.
func (m *Module) Func(id FuncID) (*Func, bool) {
	if m == nil {
		return nil, false
	}
	f, ok := m.Funcs[id]
	return f, ok && f != nil
}

// Lookup finds a function by name.
func (m *Module) Lookup(name string) (*Func, bool) {
	if m == nil {
		return nil, false
	}
	id, ok := m.ByName[name]
	if !ok {
		return nil, false
	}
	return m.Func(id)
}

// Add registers f, assigning it the next free FuncID.
func (m *Module) Add(f *Func) FuncID {
	id := FuncID(len(m.Funcs))
	for m.Funcs[id] != nil {
		id++
	}
	f.ID = id
	m.Funcs[id] = f
	if f.Name != "" {
		m.ByName[f.Name] = id
	}
	return id
}

// Sorted returns the module's functions ordered by id.
func (m *Module) Sorted() []*Func {
	if m == nil {
		return nil
	}
	out := make([]*Func, 0, len(m.Funcs))
	for _, f := range m.Funcs {
		if f != nil {
			out = append(out, f)
		}
	}
	slices.SortFunc(out, func(a, b *Func) int { return cmp.Compare(a.ID, b.ID) })
	return out
}
