package rule

import "testing"

func TestGroupValueScalar(t *testing.T) {
	g := NewGroupValue("hello")
	if g.String() != "hello" {
		t.Errorf("String() = %q, want hello", g.String())
	}
	if got := g.List(); len(got) != 1 || got[0] != "hello" {
		t.Errorf("List() = %v, want [hello]", got)
	}
	if g.Empty() {
		t.Error("non-empty scalar reported Empty()")
	}
}

func TestGroupValueEmpty(t *testing.T) {
	var g GroupValue
	if !g.Empty() {
		t.Error("zero-value GroupValue should be Empty()")
	}
	if g.String() != "" {
		t.Errorf("String() = %q, want \"\"", g.String())
	}
	if g.List() != nil {
		t.Errorf("List() = %v, want nil", g.List())
	}
}

func TestGroupValueList(t *testing.T) {
	g := NewGroupList([]string{"male", "?"})
	if g.String() != "?" {
		t.Errorf("String() = %q, want last element \"?\"", g.String())
	}
	got := g.List()
	if len(got) != 2 || got[0] != "male" || got[1] != "?" {
		t.Errorf("List() = %v", got)
	}
	if g.Empty() {
		t.Error("non-empty list reported Empty()")
	}
}

func TestGroupsGetHas(t *testing.T) {
	groups := Groups{"value": NewGroupValue("5"), "empty": NewGroupValue("")}
	if groups.Get("value") != "5" {
		t.Errorf("Get(value) = %q, want 5", groups.Get("value"))
	}
	if groups.Get("missing") != "" {
		t.Errorf("Get(missing) = %q, want \"\"", groups.Get("missing"))
	}
	if !groups.Has("value") {
		t.Error("Has(value) should be true")
	}
	if groups.Has("empty") {
		t.Error("Has(empty) should be false")
	}
	if groups.Has("missing") {
		t.Error("Has(missing) should be false")
	}
}

func TestCombineScalarRightmostWins(t *testing.T) {
	a := New("r", "n1", 0, 3, Groups{"value": NewGroupValue("first")})
	b := New("r", "n2", 3, 6, Groups{"value": NewGroupValue("second")})
	combined := Combine("rule", "combined", []Token{a, b}, nil)
	if combined.Start != 0 || combined.End != 6 {
		t.Errorf("span = [%d,%d), want [0,6)", combined.Start, combined.End)
	}
	if combined.Groups.Get("value") != "second" {
		t.Errorf("scalar merge: Get(value) = %q, want second (rightmost wins)", combined.Groups.Get("value"))
	}
}

func TestCombineListMerge(t *testing.T) {
	a := New("r", "n1", 0, 4, Groups{"value": NewGroupValue("male")})
	b := New("r", "n2", 4, 5, Groups{"value": NewGroupValue("?")})
	combined := Combine("rule", "combined", []Token{a, b}, map[string]bool{"value": true})
	got := combined.Groups["value"].List()
	if len(got) != 2 || got[0] != "male" || got[1] != "?" {
		t.Errorf("list-merge Groups[value].List() = %v, want [male ?]", got)
	}
}

func TestCombineEmpty(t *testing.T) {
	tok := Combine("r", "n", nil, nil)
	if tok.Start != 0 || tok.End != 0 {
		t.Errorf("Combine of no constituents should be zero span, got [%d,%d)", tok.Start, tok.End)
	}
}

func TestStreamSortedAndNames(t *testing.T) {
	s := Stream{
		New("r", "b", 5, 8, nil),
		New("r", "a", 0, 3, nil),
	}
	sorted := s.Sorted()
	if sorted[0].Name != "a" || sorted[1].Name != "b" {
		t.Errorf("Sorted() did not order by Start: %+v", sorted)
	}
	// original stream is untouched
	if s[0].Name != "b" {
		t.Error("Sorted() should not mutate the receiver")
	}
	names := sorted.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names() = %v", names)
	}
}
