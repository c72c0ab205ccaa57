package traits

import (
	"strings"

	"github.com/fieldtraits/traitstack/catalog"
	"github.com/fieldtraits/traitstack/rule"
	"github.com/fieldtraits/traitstack/trait"
)

// buildSex registers the sex trait family (spec §4.6: "value normalised to
// male/female/unknown with optional trailing ?"). Word-rule candidates
// carry the literal matched spelling in the "value" group (the scanner's
// allWordCandidates), including any trailing "?" already present in the
// vocabulary list, so the conversion callback only needs to normalize case
// and spelling.
func buildSex(cat *catalog.Catalog, fixups map[trait.Kind]trait.FixUp) {
	reg(cat, keywordWordsRule("sex_male", "male", "m", "male?", "m?"))
	reg(cat, keywordWordsRule("sex_female", "female", "f", "female?", "f?"))
	reg(cat, keywordWordsRule("sex_unknown", "unknown", "undetermined", "indet"))
	reg(cat, keywordWordsRule("sex_key", "sex"))

	// "value" must be registered as a list-merge group (see parser.
	// WithListMergeGroups) so that a trailing "?" token, matched by a
	// separate word rule, doesn't clobber the sex word's own "value" under
	// rightmost-wins merge; spec §8 scenario 1 needs both captured.
	produceSex := func(tok rule.Token) ([]any, bool) {
		words := tok.Groups["value"].List()
		var base string
		uncertain := false
		for _, w := range words {
			if w == "?" {
				uncertain = true
				continue
			}
			if v := sexValue(w); v != "" {
				base = v
			}
		}
		if base == "" {
			return nil, false
		}
		if uncertain && !strings.HasSuffix(base, "?") {
			base += "?"
		}
		return []any{trait.Trait{
			Kind:  trait.Sex,
			Start: tok.Start,
			End:   tok.End,
			Value: trait.TextValue(base),
		}}, true
	}

	reg(cat, rule.NewProducer("sex_with_key", "sex_key colon_sep? (sex_male|sex_female|sex_unknown) question_mark?", 0, produceSex))
	reg(cat, rule.NewProducer("sex_bare", "(sex_male|sex_female|sex_unknown) question_mark?", -10, produceSex))

	_ = fixups // sex has no fix-up predicate in the baseline catalogue
}

// sexValue canonicalizes a matched word-rule spelling ("m", "female?",
// "undetermined", ...) into the sex trait's normalized value, preserving a
// trailing "?" uncertainty marker.
func sexValue(raw string) string {
	lower := strings.ToLower(raw)
	uncertain := strings.HasSuffix(lower, "?")
	lower = strings.TrimSuffix(lower, "?")
	var base string
	switch lower {
	case "male", "m":
		base = "male"
	case "female", "f":
		base = "female"
	case "unknown", "undetermined", "indet", "u":
		base = "unknown"
	default:
		return ""
	}
	if uncertain {
		return base + "?"
	}
	return base
}
