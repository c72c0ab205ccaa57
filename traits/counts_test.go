package traits

import (
	"testing"

	"github.com/fieldtraits/traitstack/trait"
)

func TestPlacentalScarCount(t *testing.T) {
	p := buildFamilyParser(t, "placental_scar_count")
	traits := p.Parse("placental scars: 6")
	if len(traits) != 1 {
		t.Fatalf("Parse = %d traits, want 1: %+v", len(traits), traits)
	}
	if traits[0].Kind != trait.PlacentalScarCount || traits[0].Value.Number != 6 {
		t.Errorf("trait = %+v, want placental_scar_count 6", traits[0])
	}
}

func TestEmbryoCountPaired(t *testing.T) {
	p := buildFamilyParser(t, "embryo_count")
	traits := p.Parse("embryos: 2+3")
	if len(traits) != 1 {
		t.Fatalf("Parse = %d traits, want 1: %+v", len(traits), traits)
	}
	if traits[0].Value.Number != 5 {
		t.Errorf("embryo_count = %v, want 5 (2+3 summed)", traits[0].Value.Number)
	}
}

func TestCountOverflowRejected(t *testing.T) {
	p := buildFamilyParser(t, "embryo_count")
	traits := p.Parse("embryos: 1500")
	if len(traits) != 0 {
		t.Errorf("Parse(%q) = %+v, want no traits (count > 1000 rejected)", "embryos: 1500", traits)
	}
}

func TestCountAtOverflowBoundaryPasses(t *testing.T) {
	p := buildFamilyParser(t, "embryo_count")
	traits := p.Parse("embryos: 1000")
	if len(traits) != 1 || traits[0].Value.Number != 1000 {
		t.Errorf("Parse(%q) = %+v, want one embryo_count trait of 1000", "embryos: 1000", traits)
	}
}
