package engine

import (
	"fmt"
	"strings"

	re2 "github.com/wasilibs/go-re2"

	"github.com/fieldtraits/traitstack/rule"
)

// tokenPattern is a compiled token-level pattern: a regex over the
// synthetic token alphabet, always anchored at the start of whatever
// substring it is matched against.
type tokenPattern struct {
	ruleName   string
	regex      *re2.Regexp
	groupNames []string // informational: names declared inside the pattern body
}

// compileTokenPattern translates a token-pattern body (token-name atoms
// plus standard regex combinators and named capture groups) into a regex
// over the shared Alphabet, anchored so it only matches at the start of the
// text it is given.
func compileTokenPattern(ruleName, body string, alphabet *Alphabet) (*tokenPattern, error) {
	translated, groupNames := translateTokenPattern(body, alphabet)
	regex, err := re2.Compile("^(?:" + translated + ")")
	if err != nil {
		return nil, fmt.Errorf("rule %q: invalid token pattern: %w", ruleName, err)
	}
	return &tokenPattern{ruleName: ruleName, regex: regex, groupNames: groupNames}, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// translateTokenPattern rewrites bare token-name identifiers into their
// assigned alphabet rune, leaving regex syntax (alternation, quantifiers,
// grouping, named captures) untouched. Whitespace between atoms only
// separates names and is dropped, since the synthetic string has none.
func translateTokenPattern(body string, alphabet *Alphabet) (string, []string) {
	var sb strings.Builder
	var groupNames []string
	i := 0
	for i < len(body) {
		c := body[i]

		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			i++
			continue
		}

		if c == '(' && i+1 < len(body) && body[i+1] == '?' {
			if i+3 < len(body) && body[i+2] == 'P' && body[i+3] == '<' {
				end := strings.IndexByte(body[i:], '>')
				if end >= 0 {
					sb.WriteString(body[i : i+end+1])
					groupNames = append(groupNames, body[i+4:i+end])
					i += end + 1
					continue
				}
			}
			if i+2 < len(body) && body[i+2] == ':' {
				sb.WriteString("(?:")
				i += 3
				continue
			}
		}

		if isIdentStart(c) {
			j := i
			for j < len(body) && isIdentChar(body[j]) {
				j++
			}
			sb.WriteRune(alphabet.RuneFor(body[i:j]))
			i = j
			continue
		}

		sb.WriteByte(c)
		i++
	}
	return sb.String(), groupNames
}

// synthetic is a token stream rendered as a string over the shared
// Alphabet, with a byte-offset index back to token positions.
type synthetic struct {
	text    string
	offsets []int // offsets[i] = byte offset where token i's rune begins; offsets[len] = len(text)
}

func buildSynthetic(stream rule.Stream, alphabet *Alphabet) synthetic {
	var sb strings.Builder
	offsets := make([]int, len(stream)+1)
	for i, t := range stream {
		offsets[i] = sb.Len()
		sb.WriteRune(alphabet.RuneFor(t.Name))
	}
	offsets[len(stream)] = sb.Len()
	return synthetic{text: sb.String(), offsets: offsets}
}

// tokenIndexAtByte returns the token index whose rune begins at byte offset
// b, or -1 if b does not land exactly on a token boundary.
func (s synthetic) tokenIndexAtByte(b int) int {
	for i, off := range s.offsets {
		if off == b {
			return i
		}
	}
	return -1
}

// matchAt returns the number of tokens consumed by p when anchored at
// token position pos, or -1 if it does not match there.
func (p *tokenPattern) matchAt(s synthetic, pos int) int {
	loc := p.regex.FindStringIndex(s.text[s.offsets[pos]:])
	if loc == nil || loc[0] != 0 {
		return -1
	}
	end := s.tokenIndexAtByte(s.offsets[pos] + loc[1])
	if end < 0 {
		return -1
	}
	return end - pos
}
