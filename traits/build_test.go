package traits

import (
	"testing"

	"github.com/fieldtraits/traitstack/catalog"
)

func TestBuildRegistersAllFamilies(t *testing.T) {
	cat := catalog.New()
	fixups := Build(cat)
	if len(cat.Rules()) == 0 {
		t.Fatal("Build registered no rules")
	}
	if len(fixups) == 0 {
		t.Error("Build produced no fix-ups, want at least the length/count families' entries")
	}
	if _, err := cat.Validate(); err != nil {
		t.Errorf("Build produced an invalid catalog: %v", err)
	}
}

func TestBuildEnabledRestrictsToNamedFamilies(t *testing.T) {
	all := catalog.New()
	Build(all)

	sexOnly := catalog.New()
	BuildEnabled(sexOnly, []string{"sex"})

	if len(sexOnly.Rules()) >= len(all.Rules()) {
		t.Errorf("BuildEnabled([sex]) registered %d rules, want fewer than Build's %d", len(sexOnly.Rules()), len(all.Rules()))
	}
	if sexOnly.Lookup("sex_male") == nil {
		t.Error("BuildEnabled([sex]) should register the sex family's rules")
	}
	if sexOnly.Lookup("life_stage_word") != nil {
		t.Error("BuildEnabled([sex]) should not register the life_stage family's rules")
	}
}

func TestFamilyGroupsCoverAllGroupOrderEntries(t *testing.T) {
	seen := map[string]bool{}
	for _, group := range familyGroups {
		seen[group] = true
	}
	for _, group := range groupOrder {
		if !seen[group] {
			t.Errorf("groupOrder contains %q, which no familyGroups entry maps to", group)
		}
		if groupBuilders[group] == nil {
			t.Errorf("groupOrder contains %q, which has no groupBuilders entry", group)
		}
	}
}
