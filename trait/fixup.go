package trait

import (
	"strings"
	"unicode"
)

// FixUp inspects raw text around a trait's span and vetoes false
// positives (spec §4.5). It returns the trait unchanged, a possibly
// adjusted trait, or (zero value, false) to drop it. Predicates never
// panic on out-of-range windows; they clamp to the text's bounds.
type FixUp func(t Trait, raw string) (Trait, bool)

// Window returns the substring of raw within n characters before start and
// after end, clamped to the text's bounds. It is the shared primitive
// every fix-up predicate below is built from.
func Window(raw string, start, end, n int) string {
	lo := start - n
	if lo < 0 {
		lo = 0
	}
	hi := end + n
	if hi > len(raw) {
		hi = len(raw)
	}
	if lo > hi {
		return ""
	}
	return raw[lo:hi]
}

// Before returns up to n characters of raw immediately preceding start.
func Before(raw string, start, n int) string {
	lo := start - n
	if lo < 0 {
		lo = 0
	}
	if lo > start || start > len(raw) {
		return ""
	}
	return raw[lo:start]
}

// After returns up to n characters of raw immediately following end.
func After(raw string, end, n int) string {
	hi := end + n
	if hi > len(raw) {
		hi = len(raw)
	}
	if end > hi || end > len(raw) {
		return ""
	}
	return raw[end:hi]
}

func containsFold(haystack string, needles ...string) bool {
	lower := strings.ToLower(haystack)
	for _, n := range needles {
		if strings.Contains(lower, strings.ToLower(n)) {
			return true
		}
	}
	return false
}

// Chain runs fix-ups in order, short-circuiting on the first rejection.
func Chain(fixups ...FixUp) FixUp {
	return func(t Trait, raw string) (Trait, bool) {
		for _, f := range fixups {
			var ok bool
			t, ok = f(t, raw)
			if !ok {
				return Trait{}, false
			}
		}
		return t, true
	}
}

// RejectNear vetoes a trait whose surrounding window (within n chars on
// either side) contains any of the given substrings, case-insensitively.
// Grounded on the spec §4.5 examples (catalog numbers, trap/scrotum/
// collector words, specimen annotations) that all have this shape.
func RejectNear(n int, needles ...string) FixUp {
	return func(t Trait, raw string) (Trait, bool) {
		if containsFold(Window(raw, t.Start, t.End, n), needles...) {
			return Trait{}, false
		}
		return t, true
	}
}

// RejectIfAmbiguousKeyNear vetoes an ambiguous-key trait (a single-letter
// anchor such as "E", "T", or "L") when one of anchors (a cardinal
// direction or a lone side letter) stands as a whole word, compared
// case-insensitively, within n characters before or after the trait's
// span, per spec §4.5's "E.T." / " N " / " L " / " R " examples.
func RejectIfAmbiguousKeyNear(n int, anchors ...string) FixUp {
	return func(t Trait, raw string) (Trait, bool) {
		if !t.AmbiguousKey {
			return t, true
		}
		notLetter := func(r rune) bool { return !unicode.IsLetter(r) }
		words := append(strings.FieldsFunc(Before(raw, t.Start, n), notLetter),
			strings.FieldsFunc(After(raw, t.End, n), notLetter)...)
		for _, a := range anchors {
			for _, w := range words {
				if strings.EqualFold(w, a) {
					return Trait{}, false
				}
			}
		}
		return t, true
	}
}

// RejectCountOverflow vetoes a count trait whose numeric value exceeds
// 1000, per spec §7 item 4 / §8's "counts with parsed value > 1000 never
// appear in output" invariant.
func RejectCountOverflow(t Trait, raw string) (Trait, bool) {
	if t.Value.Kind == ValueNumber && t.Value.Number > 1000 {
		return Trait{}, false
	}
	return t, true
}
