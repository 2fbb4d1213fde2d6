// Package tac implements the three-address-code representation, the
// generator that emits it while the parser drives semantic actions, and
// the TAC-file parser that reads a previously emitted file back into a
// structured instruction list.
package tac

import "fmt"

// PlaceKind tags the variant held by a Place: Place is a tagged value
// rendered to its textual calling-convention form only at serialization,
// rather than a string built early and re-parsed later by the ASM
// generator.
type PlaceKind int

const (
	PlaceLiteral PlaceKind = iota
	PlaceTemp
	PlaceFrame
	PlaceGlobal
	PlaceAddressOf
)

// Place is an operand handle: a literal, a compiler temporary, a
// frame-relative local/parameter slot, a global name, or an address-of
// wrapper around another Place (used only by PUSH for OUT/INOUT actuals).
type Place struct {
	Kind PlaceKind

	// PlaceLiteral
	IntLit  int64
	RealLit float64
	IsReal  bool

	// PlaceTemp: numeric suffix of "_t<n>"
	Temp int

	// PlaceFrame: signed byte offset from BP (positive = parameter,
	// negative = local/temp).
	FrameOffset int

	// PlaceGlobal
	Name string

	// PlaceAddressOf
	Inner *Place
}

// LiteralInt builds an integer literal Place.
func LiteralInt(v int64) Place { return Place{Kind: PlaceLiteral, IntLit: v} }

// LiteralReal builds a real literal Place.
func LiteralReal(v float64) Place { return Place{Kind: PlaceLiteral, RealLit: v, IsReal: true} }

// Temp builds a compiler-temporary Place ("_t<n>").
func Temp(n int) Place { return Place{Kind: PlaceTemp, Temp: n} }

// Frame builds a frame-relative Place ("_BP+k" / "_BP-k").
func Frame(offset int) Place { return Place{Kind: PlaceFrame, FrameOffset: offset} }

// Global builds a Place referring to a name addressed directly (outermost
// scope symbols, procedure names, string-literal labels).
func Global(name string) Place { return Place{Kind: PlaceGlobal, Name: name} }

// AddressOf wraps p in an address-of Place ("@name"), used by PUSH for
// OUT/INOUT actual parameters.
func AddressOf(p Place) Place { return Place{Kind: PlaceAddressOf, Inner: &p} }

// String renders p in the TAC textual form. This is the one place string
// formatting happens; every other consumer pattern matches on Kind.
func (p Place) String() string {
	switch p.Kind {
	case PlaceLiteral:
		if p.IsReal {
			return fmt.Sprintf("%g", p.RealLit)
		}
		return fmt.Sprintf("%d", p.IntLit)
	case PlaceTemp:
		return fmt.Sprintf("_t%d", p.Temp)
	case PlaceFrame:
		if p.FrameOffset >= 0 {
			return fmt.Sprintf("_BP+%d", p.FrameOffset)
		}
		return fmt.Sprintf("_BP-%d", -p.FrameOffset)
	case PlaceGlobal:
		return p.Name
	case PlaceAddressOf:
		return "@" + p.Inner.String()
	default:
		return "<?>"
	}
}

// ErrorPlace is the sentinel returned by place resolution when an operand
// cannot be resolved.
var ErrorPlace = Place{Kind: PlaceGlobal, Name: "_ERROR_"}
