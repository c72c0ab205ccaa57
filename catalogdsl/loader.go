package catalogdsl

import (
	"fmt"
	"strings"

	"github.com/fieldtraits/traitstack/catalog"
	"github.com/fieldtraits/traitstack/rule"
)

// Load parses a catalog DSL source and returns the Fragment/Keyword rules
// it declares. Malformed stanzas are a Construction error (spec.md §4.7
// item 1); the returned error carries the DSL lexer's line/column.
func Load(source string) ([]*rule.Rule, error) {
	f, err := dslParser.ParseString("", source)
	if err != nil {
		return nil, fmt.Errorf("catalog dsl: %w", err)
	}

	rules := make([]*rule.Rule, 0, len(f.Stanzas))
	for _, st := range f.Stanzas {
		r, err := stanzaToRule(st)
		if err != nil {
			return nil, fmt.Errorf("catalog dsl: %s:%d:%d: %w", st.Pos.Filename, st.Pos.Line, st.Pos.Column, err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

func stanzaToRule(st *Stanza) (*rule.Rule, error) {
	switch st.Kind {
	case "fragment":
		if st.Regex == nil {
			return nil, fmt.Errorf("fragment %q requires a backtick-quoted regex body", st.Name)
		}
		return rule.NewFragment(st.Name, *st.Regex), nil
	case "keyword":
		if st.Regex != nil {
			return rule.NewKeywordRegex(st.Name, *st.Regex), nil
		}
		if len(st.Words) == 0 {
			return nil, fmt.Errorf("keyword %q requires a regex body or a comma-separated word list", st.Name)
		}
		words := make([]string, len(st.Words))
		for i, w := range st.Words {
			words[i] = strings.TrimSpace(w)
		}
		return rule.NewKeywordWords(st.Name, words...), nil
	default:
		return nil, fmt.Errorf("unknown stanza kind %q", st.Kind)
	}
}

// LoadInto parses source and registers every declared rule into cat,
// returning a Construction error naming the offending rule on the first
// registration failure (duplicate name, validation failure).
func LoadInto(cat *catalog.Catalog, source string) error {
	rules, err := Load(source)
	if err != nil {
		return err
	}
	for _, r := range rules {
		if err := cat.Register(r); err != nil {
			return fmt.Errorf("catalog dsl: registering %q: %w", r.Name, err)
		}
	}
	return nil
}
