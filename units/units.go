// Package units provides the static length/mass unit conversion tables and
// compound-unit support described by spec §4.4 and §6.
package units

import "strings"

// Factor is a single unit's conversion factor to the trait's canonical
// base (millimetres for length, grams for mass). Compound is set for
// entries like "ft in" that map to a positional pair of factors instead of
// one scalar (spec §4.4: "value may be scalar or a two-element list").
type Factor struct {
	Scalar   float64
	Compound [2]float64
	IsCompound bool
}

// Length maps accepted length unit spellings to their millimetre factor
// (spec glossary excerpt: mm=1.0, cm=10.0, m=1000.0, in=25.4, ft=304.8).
var Length = map[string]Factor{
	"mm":          {Scalar: 1.0},
	"millimeter":  {Scalar: 1.0},
	"millimeters": {Scalar: 1.0},
	"millimetre":  {Scalar: 1.0},
	"millimetres": {Scalar: 1.0},
	"cm":          {Scalar: 10.0},
	"centimeter":  {Scalar: 10.0},
	"centimeters": {Scalar: 10.0},
	"centimetre":  {Scalar: 10.0},
	"centimetres": {Scalar: 10.0},
	"m":           {Scalar: 1000.0},
	"meter":       {Scalar: 1000.0},
	"meters":      {Scalar: 1000.0},
	"in":          {Scalar: 25.4},
	"inch":        {Scalar: 25.4},
	"inches":      {Scalar: 25.4},
	"ft":          {Scalar: 304.8},
	"foot":        {Scalar: 304.8},
	"feet":        {Scalar: 304.8},
	"ft in":       {IsCompound: true, Compound: [2]float64{304.8, 25.4}},
	"ft, in":      {IsCompound: true, Compound: [2]float64{304.8, 25.4}},
}

// Mass maps accepted mass unit spellings to their gram factor (spec
// glossary excerpt: g=1.0, kg=1000.0, mg=0.001, oz=28.349, lb=453.593).
var Mass = map[string]Factor{
	"g":          {Scalar: 1.0},
	"gram":       {Scalar: 1.0},
	"grams":      {Scalar: 1.0},
	"gm":         {Scalar: 1.0},
	"gms":        {Scalar: 1.0},
	"kg":         {Scalar: 1000.0},
	"kilogram":   {Scalar: 1000.0},
	"kilograms":  {Scalar: 1000.0},
	"mg":         {Scalar: 0.001},
	"milligram":  {Scalar: 0.001},
	"milligrams": {Scalar: 0.001},
	"oz":         {Scalar: 28.349},
	"ozs":        {Scalar: 28.349},
	"ounce":      {Scalar: 28.349},
	"ounces":     {Scalar: 28.349},
	"lb":         {Scalar: 453.593},
	"lbs":        {Scalar: 453.593},
	"pound":      {Scalar: 453.593},
	"pounds":     {Scalar: 453.593},
	"lb oz":      {IsCompound: true, Compound: [2]float64{453.593, 28.349}},
	"lbs ozs":    {IsCompound: true, Compound: [2]float64{453.593, 28.349}},
}

// LengthShorthandUnit and MassShorthandUnit are the synthetic unit names a
// shorthand decoder attaches when a shorthand notation carried no explicit unit spelling
// (spec §8 scenario 3: "units=mm_shorthand"/"g_shorthand").
const (
	LengthShorthandUnit = "mm_shorthand"
	MassShorthandUnit   = "g_shorthand"
)

// Lookup normalizes unit to lowercase and looks it up in table, returning
// ok=false on any lookup failure (spec §4.4: "look it up... return a
// sentinel (absent) on failure").
func Lookup(table map[string]Factor, unit string) (Factor, bool) {
	f, ok := table[strings.ToLower(strings.TrimSpace(unit))]
	return f, ok
}

// Convert applies a scalar unit's factor to value. It returns ok=false if
// unit is unknown or is a compound unit (use ConvertCompound for those).
func Convert(table map[string]Factor, value float64, unit string) (float64, bool) {
	f, ok := Lookup(table, unit)
	if !ok || f.IsCompound {
		return 0, false
	}
	return value * f.Scalar, true
}

// ConvertCompound applies a compound unit's factor pair positionally to
// (major, minor) — e.g. feet and inches, or pounds and ounces — summing
// the two converted components (spec §4.4: "compound units like 'ft in'
// map to a factor pair applied positionally").
func ConvertCompound(table map[string]Factor, major, minor float64, unit string) (float64, bool) {
	f, ok := Lookup(table, unit)
	if !ok || !f.IsCompound {
		return 0, false
	}
	return major*f.Compound[0] + minor*f.Compound[1], true
}

// IsCompound reports whether unit names a compound entry in table.
func IsCompound(table map[string]Factor, unit string) bool {
	f, ok := Lookup(table, unit)
	return ok && f.IsCompound
}
