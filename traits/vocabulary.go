package traits

import (
	"github.com/fieldtraits/traitstack/catalog"
	"github.com/fieldtraits/traitstack/rule"
)

// buildCommonVocabulary registers the Fragment/Keyword rules shared by
// every trait family: numeric literals, unit spellings, separators, and
// the shorthand notation block (spec §4.6 "vocabulary fragments and
// keywords" shared across trait modules).
func buildCommonVocabulary(cat *catalog.Catalog) {
	// shorthand_block matches the whole "123-45-20-18:9.2g" positional
	// notation, including bracketed-estimate and unknown-marker slots, as
	// one raw token whose "value" group is handed to shorthand.Decode. It is
	// declared before number: the Scanner's alternation takes the first
	// alternative that matches at a position, so a later shorthand_block
	// would always lose its leading digits to number.
	reg(cat, fragmentRule("shorthand_block",
		`(?P<value>`+shSlot+`(?:[:/-]`+shSlot+`){3}(?:[:/=-]`+shWeightSlot+`)?(?:[:/-][a-z]{1,4}[0-9]+(?:\.[0-9]+)?)*)`,
		"value"))

	reg(cat, fragmentRule("number", `(?P<value>[0-9]+(?:\.[0-9]+)?|\.[0-9]+)`, "value"))
	reg(cat, fragmentRule("bracket_number", `\[(?P<value>[0-9]+(?:\.[0-9]+)?|\.[0-9]+)\]`, "value"))

	reg(cat, keywordRegexRule("cross_x", `\s*[xX×]\s*`))
	reg(cat, keywordRegexRule("range_sep", `\s*(?:-{1,2}|\bto\b)\s*`))
	reg(cat, keywordRegexRule("colon_sep", `\s*[:=]\s*`))
	reg(cat, keywordRegexRule("plus_sep", `\s*\+\s*`))

	reg(cat, keywordRegexRule("unit_length",
		`\b(?P<unit>millimet(?:er|re)s?|centimet(?:er|re)s?|mm|cm|m|inch(?:es)?|in|feet|foot|ft)\b`))
	reg(cat, keywordRegexRule("unit_mass",
		`\b(?P<unit>kilograms?|kg|milligrams?|mg|grams?|gm?s?|ounces?|ozs?|pounds?|lbs?)\b`))

	reg(cat, keywordRegexRule("side_letter", `\b(?P<side>left|right|[lLrR])\b`))
	reg(cat, keywordRegexRule("measured_from",
		`\b(?:from\s+)?(?P<measured_from>notch|crown)\b`))

	reg(cat, keywordRegexRule("ambiguous_key_letter", `\b(?P<key>[ELT])\b`))

	reg(cat, keywordWordsRule("question_mark", "?"))
}

// shSlot matches one positional length slot: a bare/bracketed number or an
// unknown marker ("?", "x", "n/d").
const shSlot = `(?:\[?[0-9]+(?:\.[0-9]+)?\]?|\?|x|n/d)`

// shWeightSlot additionally allows a trailing unit-letter suffix on the
// weight slot (e.g. "9.2g").
const shWeightSlot = `(?:\[?[0-9]+(?:\.[0-9]+)?\]?[a-zA-Z]*|\?|x|n/d)`

// fragmentRule and keywordRegexRule bodies rely on the Scanner's master
// pattern already being compiled case-insensitively (spec §4.1); they
// don't need their own "(?i)" prefix.
func fragmentRule(name, body string, groups ...string) *rule.Rule {
	return rule.NewFragment(name, body, groups...)
}

func keywordRegexRule(name, body string) *rule.Rule {
	return rule.NewKeywordRegex(name, body)
}

func keywordWordsRule(name string, words ...string) *rule.Rule {
	return rule.NewKeywordWords(name, words...)
}
