package traits

import "testing"

func TestLifeStageWithKey(t *testing.T) {
	p := buildFamilyParser(t, "life_stage")
	traits := p.Parse("age: adult")
	if len(traits) != 1 {
		t.Fatalf("Parse = %d traits, want 1: %+v", len(traits), traits)
	}
	if got := traits[0].Value.Text; got != "adult" {
		t.Errorf("life_stage = %q, want adult", got)
	}
}

func TestLifeStageBareLowercased(t *testing.T) {
	p := buildFamilyParser(t, "life_stage")
	traits := p.Parse("JUVENILE specimen")
	if len(traits) != 1 {
		t.Fatalf("Parse = %d traits, want 1: %+v", len(traits), traits)
	}
	if got := traits[0].Value.Text; got != "juvenile" {
		t.Errorf("life_stage = %q, want juvenile", got)
	}
}

func TestLifeStageExcludesEmbryoForms(t *testing.T) {
	p := buildFamilyParser(t, "life_stage")
	traits := p.Parse("one embryo present")
	if len(traits) != 0 {
		t.Errorf("Parse(%q) = %+v, want no life_stage traits (embryo excluded)", "one embryo present", traits)
	}
}
