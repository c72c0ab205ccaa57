// Package parser assembles the Rule Catalog, Scanner, rewrite engine
// (Replacer/Grouper passes), Producer engine, and fix-up filter into the
// programmatic entry point described by spec §6: Parser.parse(text,
// field?) → list<Trait>.
package parser

import (
	"fmt"
	"sort"

	"github.com/fieldtraits/traitstack/catalog"
	"github.com/fieldtraits/traitstack/engine"
	"github.com/fieldtraits/traitstack/rule"
	"github.com/fieldtraits/traitstack/scanner"
	"github.com/fieldtraits/traitstack/trait"
)

// byPriorityDesc stable-sorts rules by descending Priority, so that within
// the Rewriter/Producer engines' length-tie tie-break (which favors the
// rule appearing first), a higher-declared Priority wins ties over a lower
// one, and rules of equal priority keep their catalog declaration order.
func byPriorityDesc(rules []*rule.Rule) {
	sort.SliceStable(rules, func(i, j int) bool { return rules[i].Priority > rules[j].Priority })
}

// FixUpSet maps a trait kind to the fix-up predicate that should run on
// every trait of that kind after the Producer pass (spec §4.5). A kind
// with no entry runs no fix-up.
type FixUpSet map[trait.Kind]trait.FixUp

// Parser is an immutable, concurrency-safe trait extractor built from one
// Rule Catalog. Per spec §5, a single parse call is single-threaded and
// allocation-light; the compiled Parser itself may be shared across
// parallel callers.
type Parser struct {
	scanner  *scanner.Scanner
	replacer *engine.Rewriter
	grouper  *engine.Rewriter
	producer *engine.Producer
	fixups   FixUpSet
	listMerge map[string]bool
}

// Option configures Parser construction.
type Option func(*options)

type options struct {
	fixups    FixUpSet
	listMerge map[string]bool
}

// WithFixUps attaches a fix-up predicate set, run per trait kind after the
// Producer pass (spec §4.5).
func WithFixUps(f FixUpSet) Option {
	return func(o *options) { o.fixups = f }
}

// WithListMergeGroups names the group keys that concatenate (list-merge)
// rather than rightmost-wins on a merge collision (spec §3 "list-merge
// concatenation for designated keys").
func WithListMergeGroups(keys ...string) Option {
	return func(o *options) {
		if o.listMerge == nil {
			o.listMerge = map[string]bool{}
		}
		for _, k := range keys {
			o.listMerge[k] = true
		}
	}
}

// New builds a Parser from cat. It validates the rule graph (spec §4.7
// Construction error taxonomy item 1), compiles the Scanner from
// Fragment/Keyword rules, the Replacer pass, the Grouper pass, and the
// Producer pass, in that dependency order. Any failure here is a
// Construction error: caller-visible and fatal for this Parser.
func New(cat *catalog.Catalog, opts ...Option) (*Parser, error) {
	if len(cat.Rules()) == 0 {
		return nil, fmt.Errorf("parser: empty rule set")
	}
	if _, err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var fragments, keywords, replacers, groupers, producers []*rule.Rule
	for _, r := range cat.Rules() {
		switch r.Kind {
		case rule.Fragment:
			fragments = append(fragments, r)
		case rule.Keyword:
			keywords = append(keywords, r)
		case rule.Replacer:
			if err := engine.ValidateNoSelfCycle(r); err != nil {
				return nil, fmt.Errorf("parser: %w", err)
			}
			replacers = append(replacers, r)
		case rule.Grouper:
			if err := engine.ValidateNoSelfCycle(r); err != nil {
				return nil, fmt.Errorf("parser: %w", err)
			}
			groupers = append(groupers, r)
		case rule.Producer:
			producers = append(producers, r)
		}
	}

	scanRules := append(append([]*rule.Rule{}, fragments...), keywords...)
	scn, err := scanner.Build(scanRules)
	if err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}

	byPriorityDesc(replacers)
	byPriorityDesc(groupers)
	byPriorityDesc(producers)

	replAlphabet := engine.NewAlphabet()
	repl, err := engine.NewRewriter(replacers, replAlphabet)
	if err != nil {
		return nil, fmt.Errorf("parser: building replacer pass: %w", err)
	}

	groupAlphabet := engine.NewAlphabet()
	grp, err := engine.NewRewriter(groupers, groupAlphabet)
	if err != nil {
		return nil, fmt.Errorf("parser: building grouper pass: %w", err)
	}

	prodAlphabet := engine.NewAlphabet()
	prod, err := engine.NewProducer(producers, prodAlphabet)
	if err != nil {
		return nil, fmt.Errorf("parser: building producer pass: %w", err)
	}

	return &Parser{
		scanner:   scn,
		replacer:  repl,
		grouper:   grp,
		producer:  prod,
		fixups:    o.fixups,
		listMerge: o.listMerge,
	}, nil
}

// Parse runs the full pipeline (Scan → Replacer fixpoint → Grouper
// fixpoint → Producer fixpoint → fix-up filter) over text and returns the
// resulting Traits, sorted by start offset (spec §8: "Returned Traits are
// sorted by start offset"). field is an optional caller-supplied label
// (e.g. the source CSV column) carried only for diagnostics by callers
// such as the batch runner; it has no effect on parsing.
func (p *Parser) Parse(text string, field ...string) []trait.Trait {
	stream := p.scanner.Scan(text)
	stream = p.replacer.Run(stream, p.listMerge)
	stream = p.grouper.Run(stream, p.listMerge)
	_, produced := p.producer.Run(stream, p.listMerge)

	traits := make([]trait.Trait, 0, len(produced))
	for _, v := range produced {
		t, ok := v.(trait.Trait)
		if !ok {
			continue
		}
		if fix, ok := p.fixups[t.Kind]; ok {
			t, ok = fix(t, text)
			if !ok {
				continue
			}
		}
		traits = append(traits, t)
	}

	sort.SliceStable(traits, func(i, j int) bool { return traits[i].Start < traits[j].Start })
	return traits
}
