// Package traits declares the concrete trait parsers enumerated by spec
// §4.6: vocabulary Fragment/Keyword rules, normalizing Replacers, and
// Producer rules with conversion callbacks, for every trait kind. Build
// assembles all of them into one shared Rule Catalog so that common
// vocabulary (numbers, units, separators) is interned once.
package traits

import (
	"strconv"
	"strings"

	"github.com/fieldtraits/traitstack/catalog"
	"github.com/fieldtraits/traitstack/rule"
	"github.com/fieldtraits/traitstack/shorthand"
	"github.com/fieldtraits/traitstack/trait"
	"github.com/fieldtraits/traitstack/units"
)

// toFloat is the tolerant numeric parser shared by every conversion
// callback (spec §4.4): strips commas and bracketing characters, returns
// ok=false on failure instead of panicking.
func toFloat(s string) (float64, bool) {
	s = strings.Trim(s, "[]() \t")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// toInt is toFloat's integer counterpart, used by count producers.
func toInt(s string) (int, bool) {
	v, ok := toFloat(s)
	if !ok {
		return 0, false
	}
	return int(v), true
}

// convertLength converts a numeric string plus a unit spelling into
// millimetres, honoring the absent-unit case by reporting unitsInferred.
func convertLength(valueStr, unitStr string) (mm float64, unitsOut string, unitsInferred, ok bool) {
	v, ok := toFloat(valueStr)
	if !ok {
		return 0, "", false, false
	}
	if unitStr == "" {
		return v, "", true, true
	}
	mm, ok = units.Convert(units.Length, v, unitStr)
	if !ok {
		return 0, "", false, false
	}
	return mm, strings.ToLower(unitStr), false, true
}

// convertMass is convertLength's gram-based counterpart.
func convertMass(valueStr, unitStr string) (g float64, unitsOut string, unitsInferred, ok bool) {
	v, ok := toFloat(valueStr)
	if !ok {
		return 0, "", false, false
	}
	if unitStr == "" {
		return v, "", true, true
	}
	g, ok = units.Convert(units.Mass, v, unitStr)
	if !ok {
		return 0, "", false, false
	}
	return g, strings.ToLower(unitStr), false, true
}

// cross converts an "A x B" capture pair into a Value; if only A is
// present the scalar is returned instead (spec §4.4 "cross" helper).
func cross(aStr, bStr string) (trait.Value, bool) {
	a, ok := toFloat(aStr)
	if !ok {
		return trait.Value{}, false
	}
	if bStr == "" {
		return trait.NumberValue(a), true
	}
	b, ok := toFloat(bStr)
	if !ok {
		return trait.NumberValue(a), true
	}
	return trait.PairValue(a, b), true
}

// side maps a captured left/right/positional letter to a trait.Side.
func side(raw string) trait.Side {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "l", "left":
		return trait.SideLeft
	case "r", "right":
		return trait.SideRight
	case "1":
		return trait.Side1
	case "2":
		return trait.Side2
	default:
		return ""
	}
}

// shorthandLength extracts one slot out of a decoded shorthand Result,
// matching spec §4.4's shorthand_length helper signature.
func shorthandLength(res shorthand.Result, which shorthand.Slot) (shorthand.Measurement, bool) {
	for _, m := range res.Measurements {
		if m.Slot == which && !m.Unknown {
			return m, true
		}
	}
	return shorthand.Measurement{}, false
}

// reg is a tiny helper that registers r into cat and panics on error,
// mirroring catalog.MustRegister but usable as a one-liner inside the
// declarative rule lists below.
func reg(cat *catalog.Catalog, r *rule.Rule) *rule.Rule {
	return cat.MustRegister(r)
}

// familyGroups maps a config parser name (SPEC_FULL.md §4.12's "parsers:
// [sex, life_stage, ...]" list) to the shared builder group it belongs to.
// Kinds sharing one group (the four simple lengths, the three gonad
// families, the two counts, the three bare-categorical states) are gated
// together since they share vocabulary and producer wiring.
var familyGroups = map[string]string{
	"sex":                  "sex",
	"life_stage":           "life_stage",
	"total_length":         "lengths",
	"tail_length":          "lengths",
	"hind_foot_length":     "lengths",
	"ear_length":           "lengths",
	"body_mass":            "body_mass",
	"testes_state":         "reproductive",
	"testes_size":          "reproductive",
	"ovaries_state":        "reproductive",
	"ovaries_size":         "reproductive",
	"gonads_state":         "reproductive",
	"placental_scar_count": "counts",
	"embryo_count":         "counts",
	"lactation_state":      "states",
	"nipple_state":         "states",
	"pregnancy_state":      "states",
}

var groupBuilders = map[string]func(*catalog.Catalog, map[trait.Kind]trait.FixUp){
	"sex":          buildSex,
	"life_stage":   buildLifeStage,
	"lengths":      buildLengths,
	"body_mass":    buildBodyMass,
	"reproductive": buildReproductive,
	"counts":       buildCounts,
	"states":       buildStates,
}

// groupOrder fixes the registration order of builder groups so that rule
// declaration order (and therefore tie-breaking inside the Scanner and
// rewrite engines) is deterministic regardless of map iteration order.
var groupOrder = []string{"sex", "life_stage", "lengths", "body_mass", "reproductive", "counts", "states"}

// Build registers every trait family's rules into cat and returns the
// combined fix-up set, ready to pass to parser.New via parser.WithFixUps.
func Build(cat *catalog.Catalog) map[trait.Kind]trait.FixUp {
	return BuildEnabled(cat, nil)
}

// BuildEnabled is Build, restricted to the named parser families (per
// SPEC_FULL.md §4.12's config "parsers" list). A nil or empty enabled set
// means "all families", matching config.Default().
func BuildEnabled(cat *catalog.Catalog, enabled []string) map[trait.Kind]trait.FixUp {
	buildCommonVocabulary(cat)
	fixups := map[trait.Kind]trait.FixUp{}

	wantAll := len(enabled) == 0
	wanted := map[string]bool{}
	for _, e := range enabled {
		wanted[e] = true
	}

	groupWanted := map[string]bool{}
	for name, group := range familyGroups {
		if wantAll || wanted[name] {
			groupWanted[group] = true
		}
	}
	for _, group := range groupOrder {
		if groupWanted[group] {
			groupBuilders[group](cat, fixups)
		}
	}
	return fixups
}
