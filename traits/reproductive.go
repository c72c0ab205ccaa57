package traits

import (
	"strings"

	"github.com/fieldtraits/traitstack/catalog"
	"github.com/fieldtraits/traitstack/rule"
	"github.com/fieldtraits/traitstack/trait"
)

// gonadFamily describes one side-paired gonad trait pair: a categorical
// state kind and a numeric cross-measurement size kind sharing a key and
// vocabulary (spec §4.6: "testes_state, testes_size, ovaries_state,
// ovaries_size, gonads_state: side-paired measurements and categorical
// state").
type gonadFamily struct {
	stateKind trait.Kind
	sizeKind  trait.Kind
	prefix    string
	keyWords  []string
	states    []string
}

var gonadFamilies = []gonadFamily{
	{
		stateKind: trait.TestesState,
		sizeKind:  trait.TestesSize,
		prefix:    "testes",
		keyWords:  []string{"testes", "testis", "testicles"},
		states:    []string{"descended", "scrotal", "abdominal", "undescended", "partially descended"},
	},
	{
		stateKind: trait.OvariesState,
		sizeKind:  trait.OvariesSize,
		prefix:    "ovaries",
		keyWords:  []string{"ovaries", "ovary"},
		states:    []string{"developed", "undeveloped", "with corpus luteum", "luteum", "enlarged"},
	},
	{
		stateKind: trait.GonadsState,
		sizeKind:  0,
		prefix:    "gonads",
		keyWords:  []string{"gonads", "gonad"},
		states:    []string{"descended", "scrotal", "abdominal", "developed", "undeveloped"},
	},
}

func buildReproductive(cat *catalog.Catalog, fixups map[trait.Kind]trait.FixUp) {
	for _, fam := range gonadFamilies {
		buildOneGonad(cat, fam)
	}
	_ = fixups
}

func buildOneGonad(cat *catalog.Catalog, fam gonadFamily) {
	keyRule := fam.prefix + "_key"
	stateWordsRule := fam.prefix + "_state_word"
	reg(cat, keywordWordsRule(keyRule, fam.keyWords...))
	reg(cat, keywordWordsRule(stateWordsRule, fam.states...))

	emitState := func(tok rule.Token) ([]any, bool) {
		words := tok.Groups["value"].List()
		var state string
		for _, w := range words {
			state = strings.ToLower(w)
		}
		if state == "" {
			return nil, false
		}
		t := trait.Trait{
			Kind:  fam.stateKind,
			Start: tok.Start,
			End:   tok.End,
			Value: trait.TextValue(state),
		}
		if tok.Groups.Has("side") {
			t.Side = side(tok.Groups.Get("side"))
		}
		return []any{t}, true
	}
	statePattern := stateWordsRule
	if fam.prefix == "gonads" {
		// Every gonads state word is also a testes or ovaries state word,
		// and those earlier-declared rules claim the token when scanning.
		statePattern = "(testes_state_word|ovaries_state_word|gonads_state_word)"
	}
	reg(cat, rule.NewProducer(fam.prefix+"_state",
		keyRule+" side_letter? colon_sep? "+statePattern, 0, emitState))

	if fam.sizeKind == 0 {
		return
	}
	emitSize := func(tok rule.Token) ([]any, bool) {
		// Groups["value"] also carries the non-numeric key-keyword's own
		// matched text (e.g. "testes"), merged in via list-merge alongside
		// the two numbers; keep only entries that parse as a number.
		var nums []string
		for _, w := range tok.Groups["value"].List() {
			if _, ok := toFloat(w); ok {
				nums = append(nums, w)
			}
		}
		if len(nums) == 0 {
			return nil, false
		}
		var v trait.Value
		var ok bool
		if len(nums) >= 2 {
			v, ok = cross(nums[0], nums[1])
		} else {
			v, ok = cross(nums[0], "")
		}
		if !ok {
			return nil, false
		}
		t := trait.Trait{
			Kind:      fam.sizeKind,
			Start:     tok.Start,
			End:       tok.End,
			Value:     v,
			Dimension: trait.DimensionLength,
		}
		if tok.Groups.Has("unit") {
			t.Units = strings.ToLower(tok.Groups.Get("unit"))
		} else {
			t.UnitsInferred = true
		}
		return []any{t}, true
	}
	reg(cat, rule.NewProducer(fam.prefix+"_size",
		keyRule+" colon_sep? number cross_x number unit_length?", 0, emitSize))
	// A bare "A x B unit" cross-measurement, unanchored by a repeated key,
	// covers text like "Testes descended, 5x3 mm" where the key only
	// appears once before the state word (spec §8 scenario 5). Declared at
	// lower priority so an explicitly keyed match always wins ties.
	reg(cat, rule.NewProducer(fam.prefix+"_size_bare",
		"number cross_x number unit_length?", -20, emitSize))
}
