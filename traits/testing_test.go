package traits

import (
	"testing"

	"github.com/fieldtraits/traitstack/catalog"
	"github.com/fieldtraits/traitstack/parser"
)

// buildFamilyParser assembles a Parser restricted to the named config
// parser groups, mirroring how cmd/traitstack/build.go wires BuildEnabled
// into parser.New for a real run.
func buildFamilyParser(t *testing.T, enabled ...string) *parser.Parser {
	t.Helper()
	cat := catalog.New()
	fixups := BuildEnabled(cat, enabled)
	p, err := parser.New(cat, parser.WithFixUps(fixups), parser.WithListMergeGroups("value"))
	if err != nil {
		t.Fatalf("parser.New: %v", err)
	}
	return p
}
