package traits

import (
	"strings"

	"github.com/fieldtraits/traitstack/catalog"
	"github.com/fieldtraits/traitstack/rule"
	"github.com/fieldtraits/traitstack/trait"
)

// buildLifeStage registers the life_stage family (spec §4.6: "value
// preserved verbatim but lowercased, with explicit exclusion of
// embryo/fetus forms"). A single ambiguous letter "A" (adult) would be
// too noisy to key off of, so the baseline vocabulary sticks to
// unambiguous spellings.
func buildLifeStage(cat *catalog.Catalog, fixups map[trait.Kind]trait.FixUp) {
	reg(cat, keywordWordsRule("life_stage_word",
		"adult", "subadult", "sub-adult", "juvenile", "juv", "immature",
		"imm", "young", "yearling", "nestling", "fledgling", "larva", "larval",
	))
	reg(cat, keywordWordsRule("life_stage_key", "age", "life stage", "stage"))
	reg(cat, keywordWordsRule("embryo_excluded_word", "embryo", "fetus", "foetus"))

	produce := func(tok rule.Token) ([]any, bool) {
		words := tok.Groups["value"].List()
		var value string
		for _, w := range words {
			value = strings.ToLower(w)
		}
		if value == "" {
			return nil, false
		}
		return []any{trait.Trait{
			Kind:  trait.LifeStage,
			Start: tok.Start,
			End:   tok.End,
			Value: trait.TextValue(value),
		}}, true
	}

	reg(cat, rule.NewProducer("life_stage_with_key", "life_stage_key colon_sep? life_stage_word", 0, produce))
	reg(cat, rule.NewProducer("life_stage_bare", "life_stage_word", -10, produce))

	// embryo/fetus forms are excluded from life_stage by construction: no
	// producer rule consumes embryo_excluded_word, so those words yield no
	// life_stage trait. When the counts family is built too, this rule is
	// declared first and claims the singular "embryo"/"fetus"/"foetus", so
	// embryo_count's key matches only the plural forms.
	_ = fixups
}
