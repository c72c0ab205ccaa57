package traits

import (
	"github.com/fieldtraits/traitstack/catalog"
	"github.com/fieldtraits/traitstack/rule"
	"github.com/fieldtraits/traitstack/trait"
)

// countFamily describes one bi-sided count trait (spec §4.6:
// "placental_scar_count, embryo_count: ...bi-sided counts; counts > 1000
// are rejected as parse errors").
type countFamily struct {
	kind     trait.Kind
	prefix   string
	keyWords []string
}

var countFamilies = []countFamily{
	{kind: trait.PlacentalScarCount, prefix: "placental_scar", keyWords: []string{"placental scars", "placental scar", "scars", "pl sc"}},
	{kind: trait.EmbryoCount, prefix: "embryo_count", keyWords: []string{"embryos", "embryo", "fetuses", "foetuses"}},
}

func buildCounts(cat *catalog.Catalog, fixups map[trait.Kind]trait.FixUp) {
	for _, fam := range countFamilies {
		buildOneCount(cat, fixups, fam)
	}
}

func buildOneCount(cat *catalog.Catalog, fixups map[trait.Kind]trait.FixUp, fam countFamily) {
	keyRule := fam.prefix + "_key"
	reg(cat, keywordWordsRule(keyRule, fam.keyWords...))

	emit := func(tok rule.Token) ([]any, bool) {
		n, ok := toInt(tok.Groups.Get("value"))
		if !ok {
			return nil, false
		}
		t := trait.Trait{
			Kind:  fam.kind,
			Start: tok.Start,
			End:   tok.End,
			Value: trait.NumberValue(float64(n)),
		}
		if tok.Groups.Has("side") {
			t.Side = side(tok.Groups.Get("side"))
		}
		return []any{t}, true
	}
	// Left and right counts joined by "+" after the key ("embryos: 2+3")
	// sum into one total,
	// honoring each side's contribution before the overflow guard applies.
	emitPaired := func(tok rule.Token) ([]any, bool) {
		// Groups["value"] also carries the non-numeric key-keyword's own
		// matched text (e.g. "embryos"), merged in via list-merge alongside
		// the two numbers; keep only entries that parse as a number.
		var nums []int
		for _, w := range tok.Groups["value"].List() {
			if n, ok := toInt(w); ok {
				nums = append(nums, n)
			}
		}
		if len(nums) < 2 {
			return nil, false
		}
		return []any{trait.Trait{
			Kind:  fam.kind,
			Start: tok.Start,
			End:   tok.End,
			Value: trait.NumberValue(float64(nums[0] + nums[1])),
		}}, true
	}

	reg(cat, rule.NewProducer(fam.prefix+"_with_key", keyRule+" side_letter? colon_sep? number", 0, emit))
	reg(cat, rule.NewProducer(fam.prefix+"_paired", keyRule+" colon_sep? number plus_sep number", 10, emitPaired))

	fixups[fam.kind] = trait.RejectCountOverflow
}
