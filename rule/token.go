package rule

import "sort"

// GroupValue is the value held under a named capture group: either a single
// string, or (when a token-level rule declares list-merge for that group) a
// list of strings accumulated across constituent tokens.
type GroupValue struct {
	single string
	list   []string
	isList bool
}

// String returns the group's scalar value, or its last list element if the
// group is a list, or "" if the group is empty.
func (g GroupValue) String() string {
	if g.isList {
		if len(g.list) == 0 {
			return ""
		}
		return g.list[len(g.list)-1]
	}
	return g.single
}

// List returns the group's values as a slice, wrapping a scalar value in a
// single-element slice.
func (g GroupValue) List() []string {
	if g.isList {
		return g.list
	}
	if g.single == "" {
		return nil
	}
	return []string{g.single}
}

// Empty reports whether the group carries no value at all.
func (g GroupValue) Empty() bool {
	return !g.isList && g.single == "" || (g.isList && len(g.list) == 0)
}

// NewGroupValue wraps a scalar capture value.
func NewGroupValue(s string) GroupValue { return GroupValue{single: s} }

// NewGroupList wraps a list-merge capture value.
func NewGroupList(vals []string) GroupValue { return GroupValue{list: vals, isList: true} }

func listValue(vals []string) GroupValue { return GroupValue{list: vals, isList: true} }

// Groups is the named-capture map carried by a Token.
type Groups map[string]GroupValue

// Get returns the named group's scalar string, or "" if absent.
func (g Groups) Get(name string) string {
	return g[name].String()
}

// Has reports whether a named group is present and non-empty.
func (g Groups) Has(name string) bool {
	v, ok := g[name]
	return ok && !v.Empty()
}

// merge combines two group maps per the rightmost-wins / list-merge rule
// (spec §3, §9): for keys present in both, listMerge keys concatenate their
// lists, all other keys take the rightmost (b's) value.
func merge(a, b Groups, listMerge map[string]bool) Groups {
	out := make(Groups, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		if listMerge[k] {
			if existing, ok := out[k]; ok {
				out[k] = listValue(append(append([]string{}, existing.List()...), v.List()...))
				continue
			}
		}
		out[k] = v
	}
	return out
}

// Token is an immutable record produced by the Scanner or by a
// Replacer/Grouper pass: the rule that produced it, its character span
// [Start,End) in the original text, its name, and its merged group map.
// Once constructed a Token is never mutated.
type Token struct {
	Rule   string
	Name   string
	Start  int
	End    int
	Groups Groups
}

// New constructs a leaf token as emitted directly by the Scanner.
func New(ruleName, name string, start, end int, groups Groups) Token {
	if groups == nil {
		groups = Groups{}
	}
	return Token{Rule: ruleName, Name: name, Start: start, End: end, Groups: groups}
}

// Combine merges a contiguous run of constituent tokens into a single
// token named after the producing rule, spanning from the first
// constituent's Start to the last constituent's End, with the union of
// their groups merged left-to-right (rightmost wins on scalar collision;
// listMerge keys concatenate).
func Combine(ruleName, name string, constituents []Token, listMerge map[string]bool) Token {
	if len(constituents) == 0 {
		return New(ruleName, name, 0, 0, nil)
	}
	start := constituents[0].Start
	end := constituents[0].End
	groups := constituents[0].Groups
	for _, t := range constituents[1:] {
		if t.Start < start {
			start = t.Start
		}
		if t.End > end {
			end = t.End
		}
		groups = merge(groups, t.Groups, listMerge)
	}
	return New(ruleName, name, start, end, groups)
}

// Stream is an ordered, non-overlapping sequence of tokens. Gaps are
// allowed (unmatched characters are implicitly skipped); spans must be
// strictly increasing in start position.
type Stream []Token

// Sorted returns a copy of the stream ordered by start position, breaking
// ties by end position.
func (s Stream) Sorted() Stream {
	out := make(Stream, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].End < out[j].End
	})
	return out
}

// Names returns the sequence of token names, the alphabet the
// Replacer/Grouper/Producer engines pattern-match against.
func (s Stream) Names() []string {
	names := make([]string, len(s))
	for i, t := range s {
		names[i] = t.Name
	}
	return names
}
