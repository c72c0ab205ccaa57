package traits

import (
	"github.com/fieldtraits/traitstack/catalog"
	"github.com/fieldtraits/traitstack/rule"
	"github.com/fieldtraits/traitstack/trait"
	"github.com/fieldtraits/traitstack/units"
)

// buildBodyMass registers the body_mass family. Shorthand-derived mass
// traits are produced by buildShorthandLengths; this registers the
// explicit-key and compound-unit ("4 lbs 9 ozs") forms.
func buildBodyMass(cat *catalog.Catalog, fixups map[trait.Kind]trait.FixUp) {
	reg(cat, keywordWordsRule("body_mass_key", "weight", "body mass", "mass", "wt"))

	emit := func(tok rule.Token) ([]any, bool) {
		valStr := tok.Groups.Get("value")
		unitStr := tok.Groups.Get("unit")
		g, unit, inferred, ok := convertMass(valStr, unitStr)
		if !ok {
			return nil, false
		}
		return []any{trait.Trait{
			Kind:          trait.BodyMass,
			Start:         tok.Start,
			End:           tok.End,
			Value:         trait.NumberValue(g),
			Units:         unit,
			UnitsInferred: inferred,
		}}, true
	}
	reg(cat, rule.NewProducer("body_mass_with_key", "body_mass_key colon_sep? number unit_mass?", 0, emit))

	reg(cat, keywordWordsRule("unit_mass_pound", "lb", "lbs", "pound", "pounds"))
	reg(cat, keywordWordsRule("unit_mass_ounce", "oz", "ozs", "ounce", "ounces"))

	// "value" must be a list-merge group (parser.WithListMergeGroups) so
	// both numbers in "4 lbs 9 ozs" survive the merge instead of the second
	// one clobbering the first under rightmost-wins.
	emitCompound := func(tok rule.Token) ([]any, bool) {
		var nums []float64
		for _, w := range tok.Groups["value"].List() {
			if v, ok := toFloat(w); ok {
				nums = append(nums, v)
			}
		}
		if len(nums) < 2 {
			return nil, false
		}
		g, ok := units.ConvertCompound(units.Mass, nums[0], nums[1], "lb oz")
		if !ok {
			return nil, false
		}
		return []any{trait.Trait{
			Kind:  trait.BodyMass,
			Start: tok.Start,
			End:   tok.End,
			Value: trait.NumberValue(g),
			Units: "lb oz",
		}}, true
	}
	reg(cat, rule.NewProducer("body_mass_compound",
		"body_mass_key colon_sep? number unit_mass_pound number unit_mass_ounce", 10, emitCompound))

	_ = fixups
}
