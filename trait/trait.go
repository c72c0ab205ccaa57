// Package trait defines the Trait output record (spec §3) and the fix-up
// filter (spec §4.5) that vetoes false-positive matches by inspecting raw
// text around a trait's span.
package trait

import "fmt"

// Kind identifies which biological measurement a Trait represents.
type Kind string

// The trait kinds enumerated by spec §4.6.
const (
	Sex                Kind = "sex"
	LifeStage          Kind = "life_stage"
	TotalLength        Kind = "total_length"
	TailLength         Kind = "tail_length"
	HindFootLength     Kind = "hind_foot_length"
	EarLength          Kind = "ear_length"
	BodyMass           Kind = "body_mass"
	TestesState        Kind = "testes_state"
	TestesSize         Kind = "testes_size"
	OvariesState       Kind = "ovaries_state"
	OvariesSize        Kind = "ovaries_size"
	GonadsState        Kind = "gonads_state"
	PlacentalScarCount Kind = "placental_scar_count"
	EmbryoCount        Kind = "embryo_count"
	LactationState     Kind = "lactation_state"
	NippleState        Kind = "nipple_state"
	PregnancyState     Kind = "pregnancy_state"
)

// Dimension distinguishes length vs. width in a cross (A x B) measurement.
type Dimension string

const (
	DimensionLength Dimension = "length"
	DimensionWidth  Dimension = "width"
)

// MeasuredFrom records the anatomical reference point a length was
// measured from, when the text specifies one.
type MeasuredFrom string

const (
	MeasuredFromNotch MeasuredFrom = "notch"
	MeasuredFromCrown MeasuredFrom = "crown"
	MeasuredFromN     MeasuredFrom = "n" // ambiguous shorthand letter
	MeasuredFromC     MeasuredFrom = "c"
)

// Side records left/right or positional 1/2 pairing for paired organs.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
	Side1     Side = "1"
	Side2     Side = "2"
)

// ValueKind distinguishes the three shapes a Trait's value can take.
type ValueKind int

const (
	ValueNumber ValueKind = iota
	ValuePair
	ValueText
)

// Value is a tagged union: a scalar number, a pair of numbers (ranges or
// cross measurements), or a lowercased categorical string.
type Value struct {
	Kind   ValueKind
	Number float64
	Pair   [2]float64
	Text   string
}

// NumberValue wraps a scalar numeric value.
func NumberValue(v float64) Value { return Value{Kind: ValueNumber, Number: v} }

// PairValue wraps a two-element numeric value (range or A x B cross).
func PairValue(a, b float64) Value { return Value{Kind: ValuePair, Pair: [2]float64{a, b}} }

// TextValue wraps a lowercased categorical string value.
func TextValue(s string) Value { return Value{Kind: ValueText, Text: s} }

func (v Value) String() string {
	switch v.Kind {
	case ValueNumber:
		return fmt.Sprintf("%g", v.Number)
	case ValuePair:
		return fmt.Sprintf("[%g,%g]", v.Pair[0], v.Pair[1])
	default:
		return v.Text
	}
}

// Trait is the parser's output record (spec §3). Required fields are Kind,
// Start/End, and Value; every other field is optional and its zero value
// means "absent" (Units=="" means no explicit unit was recorded, distinct
// from UnitsInferred which must be set whenever Units is empty for a
// length/mass trait per spec §8's invariant).
type Trait struct {
	Kind  Kind
	Start int
	End   int
	Value Value

	Units          string
	UnitsInferred  bool
	AmbiguousKey   bool
	EstimatedValue bool
	Side           Side
	Dimension      Dimension
	MeasuredFrom   MeasuredFrom

	// Flags holds arbitrary per-trait booleans not promoted to a typed
	// field, keyed by name. No producer in the traits package sets one.
	Flags map[string]bool
}

// Text returns the substring of raw that this trait's span covers.
func (t Trait) Text(raw string) string {
	if t.Start < 0 || t.End > len(raw) || t.Start > t.End {
		return ""
	}
	return raw[t.Start:t.End]
}

// Flag reports whether a named optional flag is set.
func (t Trait) Flag(name string) bool {
	return t.Flags != nil && t.Flags[name]
}

// WithFlag returns a copy of t with the named flag set.
func (t Trait) WithFlag(name string) Trait {
	out := t
	out.Flags = make(map[string]bool, len(t.Flags)+1)
	for k, v := range t.Flags {
		out.Flags[k] = v
	}
	out.Flags[name] = true
	return out
}
