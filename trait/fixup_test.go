package trait

import "testing"

func TestWindowBeforeAfter(t *testing.T) {
	raw := "0123456789"
	if got := Window(raw, 4, 6, 2); got != "234567" {
		t.Errorf("Window = %q, want 234567", got)
	}
	if got := Before(raw, 4, 2); got != "23" {
		t.Errorf("Before = %q, want 23", got)
	}
	if got := After(raw, 6, 2); got != "67" {
		t.Errorf("After = %q, want 67", got)
	}
	// clamped to bounds
	if got := Before(raw, 1, 5); got != "0" {
		t.Errorf("Before clamp = %q, want 0", got)
	}
	if got := After(raw, 9, 5); got != "9" {
		t.Errorf("After clamp = %q, want 9", got)
	}
}

func TestChainShortCircuits(t *testing.T) {
	calls := 0
	reject := func(t Trait, raw string) (Trait, bool) { calls++; return Trait{}, false }
	neverCalled := func(t Trait, raw string) (Trait, bool) { calls++; return t, true }
	chain := Chain(reject, neverCalled)
	_, ok := chain(Trait{}, "text")
	if ok {
		t.Error("Chain should reject when the first fix-up rejects")
	}
	if calls != 1 {
		t.Errorf("Chain should short-circuit: %d fix-ups ran, want 1", calls)
	}
}

func TestChainAllPass(t *testing.T) {
	accept := func(t Trait, raw string) (Trait, bool) { return t, true }
	chain := Chain(accept, accept)
	tr, ok := chain(Trait{Kind: Sex}, "text")
	if !ok || tr.Kind != Sex {
		t.Errorf("Chain of accepting fix-ups should pass through unchanged, got %+v, %v", tr, ok)
	}
}

func TestRejectNear(t *testing.T) {
	raw := "trap number TL 120 mm"
	tr := Trait{Kind: TotalLength, Start: 15, End: 18}
	fixup := RejectNear(15, "trap", "collector")
	if _, ok := fixup(tr, raw); ok {
		t.Error("RejectNear should veto a trait near a trap mention")
	}

	raw2 := "specimen TL 120 mm recorded far from any trap notes"
	tr2 := Trait{Kind: TotalLength, Start: 12, End: 15}
	fixup2 := RejectNear(5, "trap", "collector")
	if _, ok := fixup2(tr2, raw2); !ok {
		t.Error("RejectNear should not veto a trait far from the needle")
	}
}

func TestRejectIfAmbiguousKeyNear(t *testing.T) {
	fixup := RejectIfAmbiguousKeyNear(5, "N", "S", "E", "W")
	// not ambiguous: always passes regardless of surrounding text
	plain := Trait{Start: 5, End: 8}
	if _, ok := fixup(plain, "N 5 8"); !ok {
		t.Error("non-ambiguous-key traits should never be vetoed")
	}

	ambiguous := Trait{Start: 5, End: 8, AmbiguousKey: true}
	raw := "N L: 120"
	if _, ok := fixup(ambiguous, raw); ok {
		t.Error("RejectIfAmbiguousKeyNear should veto when a cardinal direction flanks the anchor")
	}

	clear := "Sex: M, L: 120, body in good condition"
	ambiguous2 := Trait{Start: 10, End: 13, AmbiguousKey: true}
	if _, ok := fixup(ambiguous2, clear); !ok {
		t.Error("RejectIfAmbiguousKeyNear should not veto when no cardinal-direction anchor is nearby")
	}
}

func TestRejectCountOverflow(t *testing.T) {
	ok1000 := Trait{Value: NumberValue(1000)}
	if _, ok := RejectCountOverflow(ok1000, ""); !ok {
		t.Error("1000 should not overflow (boundary is > 1000)")
	}
	over := Trait{Value: NumberValue(1001)}
	if _, ok := RejectCountOverflow(over, ""); ok {
		t.Error("1001 should be rejected as a count overflow")
	}
	nonNumber := Trait{Value: TextValue("many")}
	if _, ok := RejectCountOverflow(nonNumber, ""); !ok {
		t.Error("non-numeric values should pass through RejectCountOverflow unchanged")
	}
}
