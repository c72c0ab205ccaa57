package traits

import (
	"strings"

	"github.com/fieldtraits/traitstack/catalog"
	"github.com/fieldtraits/traitstack/rule"
	"github.com/fieldtraits/traitstack/trait"
)

// stateFamily describes one purely categorical trait kind (spec §4.6:
// "lactation_state, nipple_state, pregnancy_state: categorical").
type stateFamily struct {
	kind     trait.Kind
	prefix   string
	keyWords []string
	states   []string
	sided    bool
}

var stateFamilies = []stateFamily{
	{
		kind:     trait.LactationState,
		prefix:   "lactation",
		keyWords: []string{"lactation", "lactating"},
		states:   []string{"lactating", "not lactating", "post-lactating", "nursing"},
	},
	{
		kind:     trait.NippleState,
		prefix:   "nipple",
		keyWords: []string{"nipples", "nipple", "mammae"},
		states:   []string{"enlarged", "small", "prominent", "inconspicuous", "visible"},
		sided:    true,
	},
	{
		kind:     trait.PregnancyState,
		prefix:   "pregnancy",
		keyWords: []string{"pregnant", "pregnancy", "gravid"},
		states:   []string{"pregnant", "not pregnant", "gravid"},
	},
}

func buildStates(cat *catalog.Catalog, fixups map[trait.Kind]trait.FixUp) {
	for _, fam := range stateFamilies {
		buildOneState(cat, fam)
	}
	_ = fixups
}

func buildOneState(cat *catalog.Catalog, fam stateFamily) {
	keyRule := fam.prefix + "_key"
	stateRule := fam.prefix + "_state_word"
	// State words are declared first: "lactating", "pregnant" and "gravid"
	// are also key words, and the earlier-declared rule wins the scan tie.
	reg(cat, keywordWordsRule(stateRule, fam.states...))
	reg(cat, keywordWordsRule(keyRule, fam.keyWords...))

	emit := func(tok rule.Token) ([]any, bool) {
		words := tok.Groups["value"].List()
		var state string
		for _, w := range words {
			state = strings.ToLower(w)
		}
		if state == "" {
			return nil, false
		}
		t := trait.Trait{
			Kind:  fam.kind,
			Start: tok.Start,
			End:   tok.End,
			Value: trait.TextValue(state),
		}
		if fam.sided && tok.Groups.Has("side") {
			t.Side = side(tok.Groups.Get("side"))
		}
		return []any{t}, true
	}

	pattern := keyRule + " colon_sep? " + stateRule
	if fam.sided {
		pattern = keyRule + " side_letter? colon_sep? " + stateRule
	}
	reg(cat, rule.NewProducer(fam.prefix+"_with_key", pattern, 0, emit))
	reg(cat, rule.NewProducer(fam.prefix+"_bare", stateRule, -10, emit))
}
