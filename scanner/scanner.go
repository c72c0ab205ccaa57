// Package scanner composes a trait parser's Fragment and Keyword rules into
// a single master regex (plus a literal keyword automaton for vocabulary
// lists) and walks raw text left to right to produce the initial token
// stream (spec §4.1).
package scanner

import (
	"fmt"
	"sort"
	"strings"

	re2 "github.com/wasilibs/go-re2"

	"github.com/fieldtraits/traitstack/internal/ahocorasick"
	"github.com/fieldtraits/traitstack/rule"
)

// privateRefPattern matches PCRE-style subroutine calls to a private
// fragment, e.g. "(?&number)", which the Scanner inlines textually since
// RE2 has no subroutine-call operator.
var privateRefPattern = re2.MustCompile(`\(\?&([a-zA-Z_][a-zA-Z0-9_]*)\)`)

// namedGroupPattern matches a named capture group opener, e.g. "(?P<foo>".
var namedGroupPattern = re2.MustCompile(`\(\?P<([a-zA-Z_][a-zA-Z0-9_]*)>`)

// Scanner matches a fixed set of Fragment/Keyword rules against text.
type Scanner struct {
	master      *re2.Regexp
	regexRules  []compiledAlt // indexed by alternative position, aligned with master's "_rN" groups
	wordRules   []wordRule
	declOrder   map[string]int // rule name -> global declaration index, for tie-breaking
}

type compiledAlt struct {
	ruleName string
	groupMap map[string]string // renamed group name ("r3_value") -> original ("value")
}

type wordRule struct {
	ruleName  string
	automaton *ahocorasick.Automaton
	words     []string
}

// Build compiles a Scanner from an ordered list of Fragment/Keyword rules.
// Private rules (name starting with "_") are excluded from the alternation
// but may still be referenced by other rules via "(?&name)" composition.
func Build(rules []*rule.Rule) (*Scanner, error) {
	private := map[string]*rule.Rule{}
	for _, r := range rules {
		if r.Private() {
			private[r.Name] = r
		}
	}

	s := &Scanner{declOrder: map[string]int{}}
	var alternatives []string
	declIdx := 0

	for _, r := range rules {
		if r.Kind != rule.Fragment && r.Kind != rule.Keyword {
			return nil, fmt.Errorf("scanner: rule %q is not a fragment or keyword rule", r.Name)
		}
		if r.Private() {
			continue // referenced only via inlining, never scanned directly
		}

		if r.Kind == rule.Keyword && r.Body == "" && len(r.Words) > 0 {
			auto := ahocorasick.Build(r.Words, true)
			s.wordRules = append(s.wordRules, wordRule{ruleName: r.Name, automaton: auto, words: r.Words})
			s.declOrder[r.Name] = declIdx
			declIdx++
			continue
		}

		resolved, err := inlinePrivateRefs(r.Body, private, 0)
		if err != nil {
			return nil, fmt.Errorf("scanner: rule %q: %w", r.Name, err)
		}
		if err := rejectZeroWidth(resolved, r.Name); err != nil {
			return nil, err
		}

		altIdx := len(s.regexRules)
		renamed, groupMap := renameGroups(resolved, altIdx)
		alternatives = append(alternatives, fmt.Sprintf("(?P<_r%d>%s)", altIdx, renamed))
		s.regexRules = append(s.regexRules, compiledAlt{ruleName: r.Name, groupMap: groupMap})
		s.declOrder[r.Name] = declIdx
		declIdx++
	}

	if len(alternatives) > 0 {
		pattern := "(?i)" + strings.Join(alternatives, "|")
		compiled, err := re2.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("scanner: compiling master pattern: %w", err)
		}
		s.master = compiled
	}

	return s, nil
}

// inlinePrivateRefs textually substitutes "(?&name)" subroutine references
// with the referenced private fragment's own (recursively inlined) body,
// wrapped in a non-capturing group.
func inlinePrivateRefs(body string, private map[string]*rule.Rule, depth int) (string, error) {
	if depth > 32 {
		return "", fmt.Errorf("fragment reference nesting too deep (possible cycle)")
	}
	var resolveErr error
	out := privateRefPattern.ReplaceAllStringFunc(body, func(m string) string {
		name := privateRefPattern.FindStringSubmatch(m)[1]
		ref, ok := private[name]
		if !ok {
			resolveErr = fmt.Errorf("unknown fragment reference %q", name)
			return m
		}
		inlined, err := inlinePrivateRefs(ref.Body, private, depth+1)
		if err != nil {
			resolveErr = err
			return m
		}
		return "(?:" + inlined + ")"
	})
	if resolveErr != nil {
		return "", resolveErr
	}
	return out, nil
}

// renameGroups disambiguates a rule's named capture groups by prefixing
// them with the rule's alternative index, so that the combined master
// pattern never has two alternatives declaring the same group name
// (spec §4.1: "the Scanner's resulting regex uses disambiguated alternative
// names, then renames captures back").
func renameGroups(body string, altIdx int) (string, map[string]string) {
	groupMap := map[string]string{}
	renamed := namedGroupPattern.ReplaceAllStringFunc(body, func(m string) string {
		name := namedGroupPattern.FindStringSubmatch(m)[1]
		newName := fmt.Sprintf("r%d_%s", altIdx, name)
		groupMap[newName] = name
		return "(?P<" + newName + ">"
	})
	return renamed, groupMap
}

// rejectZeroWidth rejects patterns that can match the empty string, per
// spec §4.1: "zero-width alternatives are forbidden at build time."
func rejectZeroWidth(body, ruleName string) error {
	probe, err := re2.Compile("^(?:" + body + ")$")
	if err != nil {
		return fmt.Errorf("rule %q: invalid regex: %w", ruleName, err)
	}
	if probe.MatchString("") {
		return fmt.Errorf("rule %q: zero-width alternatives are forbidden", ruleName)
	}
	return nil
}

type candidate struct {
	ruleName string
	start    int
	end      int
	text     string
	groups   rule.Groups
}

// Scan walks text left to right and emits the initial token stream: at
// each position it chooses the match (regex or keyword-word) that starts
// earliest, breaking ties by declaration order, then continues scanning
// from the end of the accepted match. Unmatched characters between
// accepted matches are implicitly skipped.
func (s *Scanner) Scan(text string) rule.Stream {
	wordCandidates := s.allWordCandidates(text)
	wi := 0

	var stream rule.Stream
	cursor := 0
	for cursor <= len(text) {
		var regexCand *candidate
		if s.master != nil {
			if loc := s.master.FindStringSubmatchIndex(text[cursor:]); loc != nil {
				regexCand = s.candidateFromRegex(text, cursor, loc)
			}
		}

		for wi < len(wordCandidates) && wordCandidates[wi].start < cursor {
			wi++
		}
		var wordCand *candidate
		if wi < len(wordCandidates) && wordCandidates[wi].start >= cursor {
			wordCand = &wordCandidates[wi]
		}

		best := pickEarliest(regexCand, wordCand, s.declOrder)
		if best == nil {
			break
		}
		stream = append(stream, rule.New(best.ruleName, best.ruleName, best.start, best.end, best.groups))
		if best.end <= cursor {
			cursor++ // guard against zero-progress loops on degenerate matches
		} else {
			cursor = best.end
		}
	}
	return stream
}

func pickEarliest(a, b *candidate, declOrder map[string]int) *candidate {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case a.start != b.start:
		if a.start < b.start {
			return a
		}
		return b
	case declOrder[a.ruleName] <= declOrder[b.ruleName]:
		return a
	default:
		return b
	}
}

func (s *Scanner) candidateFromRegex(text string, cursor int, loc []int) *candidate {
	names := s.master.SubexpNames()
	// Find which "_rN" span is non-empty.
	for i, name := range names {
		if len(name) < 3 || name[0] != '_' || name[1] != 'r' {
			continue
		}
		gi := 2 * i
		if gi+1 >= len(loc) || loc[gi] < 0 {
			continue
		}
		altIdx, err := parseAltIndex(name)
		if err != nil || altIdx >= len(s.regexRules) {
			continue
		}
		alt := s.regexRules[altIdx]
		start := cursor + loc[gi]
		end := cursor + loc[gi+1]
		groups := rule.Groups{}
		for gi2, gname := range names {
			if gname == "" || gname == name {
				continue
			}
			orig, ok := alt.groupMap[gname]
			if !ok {
				continue
			}
			idx := 2 * gi2
			if idx+1 >= len(loc) || loc[idx] < 0 {
				continue
			}
			val := text[cursor+loc[idx] : cursor+loc[idx+1]]
			groups[orig] = rule.NewGroupValue(val)
		}
		return &candidate{ruleName: alt.ruleName, start: start, end: end, text: text[start:end], groups: groups}
	}
	return nil
}

func parseAltIndex(groupName string) (int, error) {
	var n int
	_, err := fmt.Sscanf(groupName, "_r%d", &n)
	return n, err
}

func (s *Scanner) allWordCandidates(text string) []candidate {
	var out []candidate
	for _, wr := range s.wordRules {
		for _, m := range wr.automaton.FindAll(text) {
			out = append(out, candidate{
				ruleName: wr.ruleName,
				start:    m.Start,
				end:      m.End,
				text:     text[m.Start:m.End],
				groups:   rule.Groups{"value": rule.NewGroupValue(text[m.Start:m.End])},
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].start != out[j].start {
			return out[i].start < out[j].start
		}
		return s.declOrder[out[i].ruleName] < s.declOrder[out[j].ruleName]
	})
	return out
}
