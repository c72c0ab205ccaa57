package trait

import "testing"

func TestValueConstructorsAndString(t *testing.T) {
	if got := NumberValue(5).String(); got != "5" {
		t.Errorf("NumberValue(5).String() = %q, want 5", got)
	}
	if got := PairValue(3, 4).String(); got != "[3,4]" {
		t.Errorf("PairValue(3,4).String() = %q, want [3,4]", got)
	}
	if got := TextValue("male").String(); got != "male" {
		t.Errorf("TextValue(male).String() = %q, want male", got)
	}
}

func TestTraitText(t *testing.T) {
	raw := "TL 120 mm"
	tr := Trait{Start: 3, End: 6}
	if got := tr.Text(raw); got != "120" {
		t.Errorf("Text() = %q, want 120", got)
	}
	// out of range spans return ""
	if got := (Trait{Start: -1, End: 3}).Text(raw); got != "" {
		t.Errorf("Text() on negative Start = %q, want \"\"", got)
	}
	if got := (Trait{Start: 0, End: len(raw) + 5}).Text(raw); got != "" {
		t.Errorf("Text() on out-of-bounds End = %q, want \"\"", got)
	}
}

func TestTraitFlags(t *testing.T) {
	tr := Trait{Kind: Sex}
	if tr.Flag("ambiguous_age") {
		t.Error("unset flag should report false")
	}
	flagged := tr.WithFlag("ambiguous_age")
	if !flagged.Flag("ambiguous_age") {
		t.Error("WithFlag should set the named flag")
	}
	if tr.Flag("ambiguous_age") {
		t.Error("WithFlag must not mutate the receiver")
	}
}
