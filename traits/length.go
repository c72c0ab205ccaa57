package traits

import (
	"github.com/fieldtraits/traitstack/catalog"
	"github.com/fieldtraits/traitstack/rule"
	"github.com/fieldtraits/traitstack/shorthand"
	"github.com/fieldtraits/traitstack/trait"
	"github.com/fieldtraits/traitstack/units"
)

// lengthFamily describes one of the four simple length trait kinds (spec
// §4.6: "total_length, tail_length, hind_foot_length, ear_length: numeric
// with units, support ranges, fractions, compound units, shorthand, and
// ambiguous-key variants"). This package produces the keyed, ambiguous-key
// and shorthand forms; ranges, fractions and compound length units are not
// parsed.
type lengthFamily struct {
	kind           trait.Kind
	prefix         string
	keyWords       []string
	ambiguousLetter string // "" if this kind has no single-letter ambiguous form
	fixupNeedles   []string
}

var lengthFamilies = []lengthFamily{
	{
		kind:     trait.TotalLength,
		prefix:   "total_length",
		keyWords: []string{"total length", "totallength", "total body length", "tl"},
		ambiguousLetter: "L",
		fixupNeedles:    []string{"trap", "identifier", "collector"},
	},
	{
		kind:     trait.TailLength,
		prefix:   "tail_length",
		keyWords: []string{"tail length", "tail", "taillength", "tal"},
		ambiguousLetter: "T",
		fixupNeedles:    []string{"trap"},
	},
	{
		kind:     trait.HindFootLength,
		prefix:   "hind_foot_length",
		keyWords: []string{"hind foot length", "hind foot", "hindfoot", "hf", "pes"},
	},
	{
		kind:     trait.EarLength,
		prefix:   "ear_length",
		keyWords: []string{"ear length", "ear from crown", "ear", "el"},
		ambiguousLetter: "E",
		fixupNeedles:    []string{"catalog", "#", "magnemite"},
	},
}

// buildLengths registers every simple length family plus the shorthand
// decoder producer shared across all four (and body_mass).
func buildLengths(cat *catalog.Catalog, fixups map[trait.Kind]trait.FixUp) {
	for _, fam := range lengthFamilies {
		buildOneLength(cat, fixups, fam)
	}
	buildShorthandLengths(cat)
}

func buildOneLength(cat *catalog.Catalog, fixups map[trait.Kind]trait.FixUp, fam lengthFamily) {
	keyRule := fam.prefix + "_key"
	reg(cat, keywordWordsRule(keyRule, fam.keyWords...))

	emit := func(tok rule.Token) ([]any, bool) {
		valStr := tok.Groups.Get("value")
		unitStr := tok.Groups.Get("unit")
		mm, unit, inferred, ok := convertLength(valStr, unitStr)
		if !ok {
			return nil, false
		}
		t := trait.Trait{
			Kind:          fam.kind,
			Start:         tok.Start,
			End:           tok.End,
			Value:         trait.NumberValue(mm),
			Units:         unit,
			UnitsInferred: inferred,
		}
		if tok.Groups.Has("measured_from") {
			t.MeasuredFrom = trait.MeasuredFrom(tok.Groups.Get("measured_from"))
		}
		return []any{t}, true
	}

	reg(cat, rule.NewProducer(fam.prefix+"_with_key",
		keyRule+" measured_from? colon_sep? number unit_length?", 0, emit))

	if fam.ambiguousLetter != "" {
		emitAmbiguous := func(tok rule.Token) ([]any, bool) {
			traits, ok := emit(tok)
			if !ok {
				return nil, false
			}
			t := traits[0].(trait.Trait)
			t.AmbiguousKey = true
			return []any{t}, true
		}
		reg(cat, rule.NewProducer(fam.prefix+"_ambiguous_key",
			"ambiguous_key_letter colon_sep? number unit_length?", -20, emitAmbiguous))

		needles := append([]string{}, fam.fixupNeedles...)
		fixups[fam.kind] = trait.Chain(
			trait.RejectIfAmbiguousKeyNear(10, "N", "S", "E", "W", "L", "R"),
			trait.RejectNear(40, needles...),
		)
	} else if len(fam.fixupNeedles) > 0 {
		fixups[fam.kind] = trait.RejectNear(40, fam.fixupNeedles...)
	}
}

// buildShorthandLengths registers the producer that decodes a
// shorthand_block token into up to five traits spanning the four length
// kinds plus body mass (spec §4.4 shorthand_length, §8 scenario 3).
func buildShorthandLengths(cat *catalog.Catalog) {
	reg(cat, rule.NewProducer("shorthand_measurements", "shorthand_block", 0, func(tok rule.Token) ([]any, bool) {
		return decodeShorthandToken(tok)
	}))
}

func decodeShorthandToken(tok rule.Token) ([]any, bool) {
	raw := tok.Groups.Get("value")
	if raw == "" {
		return nil, false
	}
	res := shorthand.Decode(raw)
	var out []any
	slotKinds := []struct {
		slot shorthand.Slot
		kind trait.Kind
	}{
		{shorthand.SlotTotalLength, trait.TotalLength},
		{shorthand.SlotTailLength, trait.TailLength},
		{shorthand.SlotHindFoot, trait.HindFootLength},
		{shorthand.SlotEarLength, trait.EarLength},
	}
	for _, sk := range slotKinds {
		m, ok := shorthandLength(res, sk.slot)
		if !ok {
			continue
		}
		unit := m.Units
		if unit == "" {
			unit = units.LengthShorthandUnit
		}
		out = append(out, trait.Trait{
			Kind:           sk.kind,
			Start:          tok.Start,
			End:            tok.End,
			Value:          trait.NumberValue(m.Value),
			Units:          unit,
			UnitsInferred:  m.UnitsInferred,
			EstimatedValue: m.Estimated,
		})
	}
	if m, ok := shorthandLength(res, shorthand.SlotBodyMass); ok {
		unit := m.Units
		if unit == "" {
			unit = units.MassShorthandUnit
		}
		out = append(out, trait.Trait{
			Kind:           trait.BodyMass,
			Start:          tok.Start,
			End:            tok.End,
			Value:          trait.NumberValue(m.Value),
			Units:          unit,
			UnitsInferred:  m.UnitsInferred,
			EstimatedValue: m.Estimated,
		})
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}
