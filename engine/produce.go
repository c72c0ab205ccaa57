package engine

import (
	"github.com/fieldtraits/traitstack/rule"
)

// Producer runs Producer rules to fixpoint over a token stream. Each match
// invokes the rule's Action; the consumed tokens are deleted (not
// collapsed into a replacement token), per spec §4.3.
type Producer struct {
	alphabet *Alphabet
	patterns []*tokenPattern
	actions  map[string]rule.Action
}

// NewProducer compiles a Producer engine over Producer rules.
func NewProducer(rules []*rule.Rule, alphabet *Alphabet) (*Producer, error) {
	p := &Producer{alphabet: alphabet, actions: map[string]rule.Action{}}
	for _, r := range rules {
		tp, err := compileTokenPattern(r.Name, r.Body, alphabet)
		if err != nil {
			return nil, err
		}
		p.patterns = append(p.patterns, tp)
		p.actions[r.Name] = r.Action
	}
	return p, nil
}

// Run applies every producer rule to stream until no rule fires or the
// iteration cap is reached, collecting every Trait-shaped value any
// Action emitted. Trait values are returned as []any so this package need
// not depend on the trait package; callers type-assert to trait.Trait.
func (p *Producer) Run(stream rule.Stream, listMerge map[string]bool) (remaining rule.Stream, produced []any) {
	for iter := 0; iter < maxIterations; iter++ {
		next, emitted, changed := p.sweep(stream, listMerge)
		stream = next
		produced = append(produced, emitted...)
		if !changed {
			break
		}
	}
	return stream, produced
}

func (p *Producer) sweep(stream rule.Stream, listMerge map[string]bool) (rule.Stream, []any, bool) {
	if len(p.patterns) == 0 || len(stream) == 0 {
		return stream, nil, false
	}
	synth := buildSynthetic(stream, p.alphabet)

	var out rule.Stream
	var produced []any
	changed := false
	pos := 0
	for pos < len(stream) {
		bestLen := -1
		bestPattern := -1
		for i, pat := range p.patterns {
			n := pat.matchAt(synth, pos)
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
		name := p.patterns[bestPattern].ruleName
		constituents := stream[pos : pos+bestLen]
		merged := rule.Combine(name, name, constituents, listMerge)

		action := p.actions[name]
		traits, ok := action(merged)
		if !ok {
			// Callback veto: the match is silently rejected (spec §4.7
			// item 3). Leave the constituent tokens in the stream so a
			// later, lower-priority rule or later pass can still use
			// them, and advance past just the first token to retry.
			out = append(out, stream[pos])
			pos++
			continue
		}
		produced = append(produced, traits...)
		pos += bestLen
		changed = true
	}
	return out, produced, changed
}
