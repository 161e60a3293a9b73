package mir

import "fmt"

type FuncID int32
type BlockID int32

const (
	NoFuncID  FuncID  = -1
	NoBlockID BlockID = -1
)

// EntryBlock is the block execution starts at unless a Func names another.
const EntryBlock BlockID = 0

// Local is a declared slot of a function body: an argument, a user
// variable or a compiler temporary.
type Local struct {
	Name string `msgpack:"name"`
}

// PlaceKind distinguishes the addressable locations of a body.
type PlaceKind uint8

const (
	// PlaceReturn is the return-value slot.
	PlaceReturn PlaceKind = iota
	// PlaceArg is an argument slot.
	PlaceArg
	// PlaceVar is a user variable slot.
	PlaceVar
	// PlaceTemp is a temporary slot.
	PlaceTemp
	// PlaceStatic names a global item. The VM has no storage for it.
	PlaceStatic
)

// Place is a symbolic reference to an addressable slot.
type Place struct {
	Kind  PlaceKind `msgpack:"kind"`
	Index uint32    `msgpack:"index"`
}

func ReturnPlace() Place         { return Place{Kind: PlaceReturn} }
func ArgPlace(i uint32) Place    { return Place{Kind: PlaceArg, Index: i} }
func VarPlace(i uint32) Place    { return Place{Kind: PlaceVar, Index: i} }
func TempPlace(i uint32) Place   { return Place{Kind: PlaceTemp, Index: i} }
func StaticPlace(i uint32) Place { return Place{Kind: PlaceStatic, Index: i} }

func (p Place) String() string {
	switch p.Kind {
	case PlaceReturn:
		return "ret"
	case PlaceArg:
		return fmt.Sprintf("arg%d", p.Index)
	case PlaceVar:
		return fmt.Sprintf("var%d", p.Index)
	case PlaceTemp:
		return fmt.Sprintf("tmp%d", p.Index)
	case PlaceStatic:
		return fmt.Sprintf("static%d", p.Index)
	default:
		return fmt.Sprintf("<?place:%d>", p.Kind)
	}
}
