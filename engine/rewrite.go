package engine

import (
	"fmt"

	"github.com/fieldtraits/traitstack/rule"
)

// maxIterations bounds the fixpoint loop for a single pass (spec §4.2: "a
// bounded iteration cap of N=64 to detect accidental loops").
const maxIterations = 64

// Rewriter runs Replacer or Grouper rules (identical matching semantics,
// different rule kind) to fixpoint over a token stream.
type Rewriter struct {
	alphabet *Alphabet
	patterns []*tokenPattern
}

// NewRewriter compiles a Rewriter over rules, which must all be of the
// same kind (Replacer or Grouper). rw.sweep tries patterns in slice order,
// which is rules' declared order (after parser.New's priority sort), so
// ties favor the higher-priority or earlier-declared rule.
func NewRewriter(rules []*rule.Rule, alphabet *Alphabet) (*Rewriter, error) {
	rw := &Rewriter{alphabet: alphabet}
	for _, r := range rules {
		p, err := compileTokenPattern(r.Name, r.Body, alphabet)
		if err != nil {
			return nil, err
		}
		rw.patterns = append(rw.patterns, p)
	}
	return rw, nil
}

// Run applies every rule in rw to stream until no rule fires or the
// iteration cap is reached, per spec §4.2 ordering rule 1 and 2: within a
// pass, the longest match wins at a given position; ties favor the rule
// declared first. listMerge names the group keys that concatenate instead
// of rightmost-wins on a merge collision (spec §3).
func (rw *Rewriter) Run(stream rule.Stream, listMerge map[string]bool) rule.Stream {
	for iter := 0; iter < maxIterations; iter++ {
		next, changed := rw.sweep(stream, listMerge)
		stream = next
		if !changed {
			break
		}
	}
	return stream
}

// sweep performs one left-to-right greedy application of every rule over
// stream, returning the rewritten stream and whether anything changed.
func (rw *Rewriter) sweep(stream rule.Stream, listMerge map[string]bool) (rule.Stream, bool) {
	if len(rw.patterns) == 0 || len(stream) == 0 {
		return stream, false
	}
	synth := buildSynthetic(stream, rw.alphabet)

	var out rule.Stream
	changed := false
	pos := 0
	for pos < len(stream) {
		bestLen := -1
		bestPattern := -1
		for i, p := range rw.patterns {
			n := p.matchAt(synth, pos)
			if n <= 0 {
				continue
			}
			if n > bestLen {
				bestLen = n
				bestPattern = i
			}
		}
		if bestPattern < 0 {
			out = append(out, stream[pos])
			pos++
			continue
		}
		name := rw.patterns[bestPattern].ruleName
		constituents := stream[pos : pos+bestLen]
		merged := rule.Combine(name, name, constituents, listMerge)
		out = append(out, merged)
		pos += bestLen
		changed = true
	}
	return out, changed
}

// ValidateNoSelfCycle rejects a Replacer/Grouper whose own output token
// name equals one of the input token names its pattern references
// (spec §4.2 ordering rule 3). It reads the References that
// catalog.Validate fills in, and repeats that function's self-reference
// check for rules handed to the engine directly.
func ValidateNoSelfCycle(r *rule.Rule) error {
	for _, ref := range r.References {
		if ref == r.Name {
			return fmt.Errorf("rule %q: output name equals an input token name, would create a cycle", r.Name)
		}
	}
	return nil
}
