package engine

import "testing"

func TestTranslateTokenPatternIdentifiers(t *testing.T) {
	a := NewAlphabet()
	translated, _ := translateTokenPattern("foo bar", a)
	runes := []rune(translated)
	if len(runes) != 2 { // rune(foo) + rune(bar); the space is dropped
		t.Fatalf("translateTokenPattern(%q) = %q, want 2 runes", "foo bar", translated)
	}
	if runes[0] == runes[1] {
		t.Error("distinct token names should translate to distinct runes")
	}
}

func TestTranslateTokenPatternPreservesRegexSyntax(t *testing.T) {
	a := NewAlphabet()
	translated, _ := translateTokenPattern("(foo|bar)?", a)
	if translated[0] != '(' {
		t.Errorf("leading '(' should be preserved, got %q", translated)
	}
	runes := []rune(translated)
	if runes[len(runes)-1] != '?' {
		t.Errorf("trailing '?' quantifier should be preserved, got %q", translated)
	}
}

func TestTranslateTokenPatternNamedGroup(t *testing.T) {
	a := NewAlphabet()
	_, groupNames := translateTokenPattern("(?P<side>side_letter)", a)
	if len(groupNames) != 1 || groupNames[0] != "side" {
		t.Errorf("groupNames = %v, want [side]", groupNames)
	}
}

func TestCompileTokenPatternMatchesAnchoredAtStart(t *testing.T) {
	a := NewAlphabet()
	p, err := compileTokenPattern("r", "a b", a)
	if err != nil {
		t.Fatalf("compileTokenPattern: %v", err)
	}
	// build a fake synthetic stream "a b c"
	ra, rb, rc := a.RuneFor("a"), a.RuneFor("b"), a.RuneFor("c")
	synth := synthetic{
		text:    string([]rune{ra, rb, rc}),
		offsets: []int{0, len(string(ra)), len(string(ra)) + len(string(rb)), len(string(ra)) + len(string(rb)) + len(string(rc))},
	}
	n := p.matchAt(synth, 0)
	if n != 2 {
		t.Errorf("matchAt(0) = %d, want 2 (consumes tokens a,b)", n)
	}
	if n := p.matchAt(synth, 1); n != -1 {
		t.Errorf("matchAt(1) = %d, want -1 (no match starting at token b)", n)
	}
}
