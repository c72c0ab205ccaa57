package traits

import "testing"

func TestSexWithKey(t *testing.T) {
	p := buildFamilyParser(t, "sex")
	cases := map[string]string{
		"sex: male":    "male",
		"Sex: Female":  "female",
		"sex: f":       "female",
		"sex: unknown": "unknown",
	}
	for text, want := range cases {
		traits := p.Parse(text)
		if len(traits) != 1 {
			t.Fatalf("Parse(%q) = %d traits, want 1: %+v", text, len(traits), traits)
		}
		if got := traits[0].Value.Text; got != want {
			t.Errorf("Parse(%q) sex = %q, want %q", text, got, want)
		}
	}
}

func TestSexUncertainMarker(t *testing.T) {
	p := buildFamilyParser(t, "sex")
	traits := p.Parse("sex: m?")
	if len(traits) != 1 {
		t.Fatalf("Parse = %d traits, want 1: %+v", len(traits), traits)
	}
	if got := traits[0].Value.Text; got != "male?" {
		t.Errorf("sex = %q, want male?", got)
	}
}

func TestSexBareWithoutKey(t *testing.T) {
	p := buildFamilyParser(t, "sex")
	traits := p.Parse("a male specimen")
	if len(traits) != 1 {
		t.Fatalf("Parse = %d traits, want 1: %+v", len(traits), traits)
	}
	if got := traits[0].Value.Text; got != "male" {
		t.Errorf("sex = %q, want male", got)
	}
}

func TestSexDisabledFamilyProducesNothing(t *testing.T) {
	p := buildFamilyParser(t, "life_stage")
	if traits := p.Parse("sex: male"); len(traits) != 0 {
		t.Errorf("Parse with sex family disabled = %+v, want no traits", traits)
	}
}
