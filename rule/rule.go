// Package rule defines the typed rule descriptors and immutable token
// records that the scanner and rewrite engine operate on.
package rule

import "fmt"

// Kind distinguishes the five rule variants described by the engine.
type Kind int

const (
	// Fragment rules match raw characters via a regex body and define
	// named capture groups. They are the lowest layer.
	Fragment Kind = iota
	// Keyword rules are a convenience Fragment: either a regex body or a
	// list of literal words/phrases. Word-list matches are kept only at word
	// boundaries; a regex body is compiled as written, so it has a boundary
	// guard only where the body itself contains one (e.g. \b).
	Keyword
	// Grouper rules match a run of token names and collapse them into a
	// single composite token.
	Grouper
	// Replacer rules have Grouper semantics but run in a dedicated
	// normalization pass before Groupers and Producers.
	Replacer
	// Producer rules have Grouper semantics but fire a conversion
	// callback and delete their consumed tokens instead of collapsing them.
	Producer
)

func (k Kind) String() string {
	switch k {
	case Fragment:
		return "fragment"
	case Keyword:
		return "keyword"
	case Grouper:
		return "grouper"
	case Replacer:
		return "replacer"
	case Producer:
		return "producer"
	default:
		return "unknown"
	}
}

// Action is the conversion callback attached to a Producer rule. It
// receives the synthetic token spanning the matched range and returns zero
// or more Traits, or ok=false to veto the match in-callback.
type Action func(tok Token) (traits []any, ok bool)

// Rule is a declarative pattern descriptor. Every Rule carries a unique
// name, a priority used for stable tie-breaking, and (for token-level
// rules) the set of token names it is allowed to reference.
type Rule struct {
	Name     string
	Kind     Kind
	Priority int

	// Body is the regex source for Fragment/Keyword rules, or the
	// token-pattern source for Grouper/Replacer/Producer rules.
	Body string

	// Words holds literal word/phrase alternatives for a Keyword rule
	// declared by vocabulary list rather than by regex body.
	Words []string

	// Groups lists the named capture groups a Fragment rule declares.
	Groups []string

	// References lists the token names a token-level rule's Body may
	// mention. Populated at build time by the catalog for validation.
	References []string

	// Action is non-nil only for Producer rules.
	Action Action
}

// Private reports whether the rule's name is excluded from the Scanner's
// top-level alternation, serving only as a fragment reference inside other
// rules via composition.
func (r *Rule) Private() bool {
	return len(r.Name) > 0 && r.Name[0] == '_'
}

// Validate checks invariants that must hold regardless of catalog context:
// a non-empty name, a non-empty body (or word list for literal Keywords),
// and that Producer rules carry an Action.
func (r *Rule) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("rule: unnamed rule of kind %s", r.Kind)
	}
	if r.Kind == Producer && r.Action == nil {
		return fmt.Errorf("rule %q: producer rule has no action", r.Name)
	}
	if r.Kind == Keyword && r.Body == "" && len(r.Words) == 0 {
		return fmt.Errorf("rule %q: keyword rule has neither body nor words", r.Name)
	}
	if (r.Kind == Fragment) && r.Body == "" {
		return fmt.Errorf("rule %q: fragment rule has empty body", r.Name)
	}
	if (r.Kind == Grouper || r.Kind == Replacer || r.Kind == Producer) && r.Body == "" {
		return fmt.Errorf("rule %q: %s rule has empty token pattern", r.Name, r.Kind)
	}
	return nil
}

// NewFragment builds a Fragment rule from a regex body. declaredGroups names
// the capture groups the body defines, for build-time reference validation.
func NewFragment(name, body string, declaredGroups ...string) *Rule {
	return &Rule{Name: name, Kind: Fragment, Body: body, Groups: declaredGroups}
}

// NewKeywordRegex builds a Keyword rule from a regex body.
func NewKeywordRegex(name, body string, declaredGroups ...string) *Rule {
	return &Rule{Name: name, Kind: Keyword, Body: body, Groups: declaredGroups}
}

// NewKeywordWords builds a Keyword rule from a literal word/phrase list.
func NewKeywordWords(name string, words ...string) *Rule {
	return &Rule{Name: name, Kind: Keyword, Words: words}
}

// NewGrouper builds a Grouper rule over a token pattern.
func NewGrouper(name, tokenPattern string, priority int) *Rule {
	return &Rule{Name: name, Kind: Grouper, Body: tokenPattern, Priority: priority}
}

// NewReplacer builds a Replacer rule over a token pattern.
func NewReplacer(name, tokenPattern string, priority int) *Rule {
	return &Rule{Name: name, Kind: Replacer, Body: tokenPattern, Priority: priority}
}

// NewProducer builds a Producer rule over a token pattern with a
// conversion callback.
func NewProducer(name, tokenPattern string, priority int, action Action) *Rule {
	return &Rule{Name: name, Kind: Producer, Body: tokenPattern, Priority: priority, Action: action}
}
