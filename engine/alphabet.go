// Package engine implements the Replacer/Grouper rewrite passes and the
// Producer pass (spec §4.2, §4.3): both work over token streams, not raw
// text, repeatedly collapsing or consuming the longest matching run of
// tokens until a fixpoint or the 64-iteration safety bound is reached.
package engine

import "fmt"

// basePrivateUse is the first Private Use Area codepoint. Token-pattern
// matching is implemented by mapping each distinct token name to one
// fixed-width rune and reusing the RE2 engine to match patterns over the
// resulting synthetic string, rather than writing a bespoke combinator
// matcher: a composite-token grammar is structurally just a regex over a
// token-name alphabet.
const basePrivateUse = 0xE000

// maxAlphabetSize bounds how many distinct token names a single parser may
// reference; the Private Use Area block used has 6400 codepoints, far more
// than any trait parser's rule count.
const maxAlphabetSize = 0xF8FF - basePrivateUse

// Alphabet assigns a stable rune to each distinct token name seen during
// pattern compilation, shared across every rule in one engine instance so
// the same token name always maps to the same rune.
type Alphabet struct {
	runes map[string]rune
	next  rune
}

// NewAlphabet returns an empty Alphabet.
func NewAlphabet() *Alphabet {
	return &Alphabet{runes: map[string]rune{}, next: basePrivateUse}
}

// RuneFor returns the rune assigned to name, allocating one if this is the
// first time name has been seen.
func (a *Alphabet) RuneFor(name string) rune {
	if r, ok := a.runes[name]; ok {
		return r
	}
	if a.next-basePrivateUse >= maxAlphabetSize {
		panic(fmt.Sprintf("engine: alphabet exhausted allocating rune for %q", name))
	}
	r := a.next
	a.next++
	a.runes[name] = r
	return r
}
