package unitconv

import "strings"

// Unit is a measurement unit recognized by the estimator.
type Unit string

const (
	// Volume units (base = ml)
	UnitTsp  Unit = "tsp"
	UnitTbsp Unit = "tbsp"
	UnitCup  Unit = "cup"
	UnitMl   Unit = "ml"
	UnitFlOz Unit = "fl_oz"

	// Weight units (base = g)
	UnitGram Unit = "g"
	UnitOz   Unit = "oz"
	UnitLb   Unit = "lb"

	// Count-like units — no cross-unit conversion
	UnitPiece   Unit = "piece"
	UnitSlice   Unit = "slice"
	UnitServing Unit = "serving"
)

type unitKind string

const (
	kindVolume unitKind = "volume"
	kindWeight unitKind = "weight"
	kindCount  unitKind = "count"
)

type unitDef struct {
	kind   unitKind
	toBase float64 // conversion factor to the family base unit
}

var unitTable = map[Unit]unitDef{
	UnitTsp:  {kind: kindVolume, toBase: 4.92892159375},
	UnitTbsp: {kind: kindVolume, toBase: 14.78676478125},
	UnitCup:  {kind: kindVolume, toBase: 236.5882365},
	UnitMl:   {kind: kindVolume, toBase: 1},
	UnitFlOz: {kind: kindVolume, toBase: 29.5735295625},

	UnitGram: {kind: kindWeight, toBase: 1},
	UnitOz:   {kind: kindWeight, toBase: 28.349523125},
	UnitLb:   {kind: kindWeight, toBase: 453.59237},

	UnitPiece:   {kind: kindCount, toBase: 1},
	UnitSlice:   {kind: kindCount, toBase: 1},
	UnitServing: {kind: kindCount, toBase: 1},
}

// aliases maps free-text unit words to canonical units.
var aliases = map[string]Unit{
	"tsp": UnitTsp, "teaspoon": UnitTsp, "teaspoons": UnitTsp,
	"tbsp": UnitTbsp, "tablespoon": UnitTbsp, "tablespoons": UnitTbsp,
	"cup": UnitCup, "cups": UnitCup,
	"ml": UnitMl, "milliliter": UnitMl, "milliliters": UnitMl, "millilitre": UnitMl, "millilitres": UnitMl,
	"fl_oz": UnitFlOz, "floz": UnitFlOz,
	"g": UnitGram, "gram": UnitGram, "grams": UnitGram, "gr": UnitGram,
	"oz": UnitOz, "ounce": UnitOz, "ounces": UnitOz,
	"lb": UnitLb, "lbs": UnitLb, "pound": UnitLb, "pounds": UnitLb,
	"piece": UnitPiece, "pieces": UnitPiece, "pc": UnitPiece,
	"slice": UnitSlice, "slices": UnitSlice,
	"serving": UnitServing, "servings": UnitServing, "portion": UnitServing, "portions": UnitServing,
	"bowl": UnitServing, "plate": UnitServing, "glass": UnitCup, "glasses": UnitCup,
}

// Parse resolves a free-text unit word to a canonical Unit.
func Parse(word string) (Unit, bool) {
	u, ok := aliases[strings.ToLower(strings.TrimSpace(word))]
	return u, ok
}

// IsCount reports whether a unit is count-like (piece, slice, serving).
func IsCount(u Unit) bool {
	d, ok := unitTable[u]
	return ok && d.kind == kindCount
}

// Compatible reports whether a quantity can be converted between two units.
// Count-like units are only compatible with themselves.
func Compatible(from, to Unit) bool {
	if from == to {
		return true
	}
	fd, ok := unitTable[from]
	if !ok {
		return false
	}
	td, ok := unitTable[to]
	if !ok {
		return false
	}
	if fd.kind == kindCount || td.kind == kindCount {
		return false
	}
	return fd.kind == td.kind
}

// Convert converts a quantity between compatible units.
//
// Identity when from == to. If the pair has no registered conversion
// (unknown unit, cross-family, or count-like), the input quantity is
// returned unchanged: a silently wrong conversion is worse than a visibly
// unconverted value the user can fix.
func Convert(quantity float64, from, to Unit) float64 {
	if from == to {
		return quantity
	}
	if !Compatible(from, to) {
		return quantity
	}
	fd := unitTable[from]
	td := unitTable[to]
	return quantity * fd.toBase / td.toBase
}
