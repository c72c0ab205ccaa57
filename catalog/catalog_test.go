package catalog

import (
	"strings"
	"testing"

	"github.com/fieldtraits/traitstack/rule"
)

func noopAction(rule.Token) ([]any, bool) { return nil, true }

func TestRegisterDuplicateName(t *testing.T) {
	cat := New()
	r1 := rule.NewFragment("num", "[0-9]+")
	r2 := rule.NewFragment("num", "[0-9]+")
	if err := cat.Register(r1); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := cat.Register(r2); err == nil {
		t.Error("expected error registering a second distinct rule under the same name")
	}
	// registering the same pointer twice is a no-op
	if err := cat.Register(r1); err != nil {
		t.Errorf("re-registering the same pointer should be a no-op, got %v", err)
	}
}

func TestRegisterInvalidRule(t *testing.T) {
	cat := New()
	if err := cat.Register(&rule.Rule{Kind: rule.Fragment}); err == nil {
		t.Error("expected error registering a rule with no name")
	}
}

func TestLookupAndNamesOrder(t *testing.T) {
	cat := New()
	cat.MustRegister(rule.NewFragment("a", "a"))
	cat.MustRegister(rule.NewFragment("b", "b"))
	if cat.Lookup("a") == nil || cat.Lookup("missing") != nil {
		t.Error("Lookup did not behave as expected")
	}
	names := cat.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names() = %v, want insertion order [a b]", names)
	}
}

func TestValidateUnknownReference(t *testing.T) {
	cat := New()
	cat.MustRegister(rule.NewProducer("p", "missing_token", 0, noopAction))
	if _, err := cat.Validate(); err == nil {
		t.Error("expected error for a reference to an unregistered token")
	}
}

func TestValidateDeclaredGroupIsNotUnknown(t *testing.T) {
	cat := New()
	cat.MustRegister(rule.NewFragment("num", "[0-9]+", "value"))
	cat.MustRegister(rule.NewProducer("p", "num", 0, noopAction))
	if _, err := cat.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateSelfReferenceCycle(t *testing.T) {
	cat := New()
	cat.MustRegister(rule.NewGrouper("g", "g other", 0))
	cat.MustRegister(rule.NewFragment("other", "x"))
	if _, err := cat.Validate(); err == nil {
		t.Error("expected error for a rule referencing itself")
	} else if !strings.Contains(err.Error(), "itself") {
		t.Errorf("error should mention self-reference, got: %v", err)
	}
}

func TestValidateCyclicDependency(t *testing.T) {
	cat := New()
	cat.MustRegister(rule.NewGrouper("g1", "g2", 0))
	cat.MustRegister(rule.NewGrouper("g2", "g1", 0))
	if _, err := cat.Validate(); err == nil {
		t.Error("expected error for a cyclic rule dependency")
	}
}

func TestValidateTopoOrder(t *testing.T) {
	cat := New()
	cat.MustRegister(rule.NewFragment("num", "[0-9]+"))
	cat.MustRegister(rule.NewGrouper("g", "num", 0))
	cat.MustRegister(rule.NewProducer("p", "g", 0, noopAction))

	order, err := cat.Validate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pos := map[string]int{}
	for i, n := range order {
		pos[n] = i
	}
	if pos["num"] >= pos["g"] || pos["g"] >= pos["p"] {
		t.Errorf("expected topological order num < g < p, got %v", order)
	}
}

func TestValidatePopulatesReferences(t *testing.T) {
	cat := New()
	cat.MustRegister(rule.NewFragment("num", "[0-9]+"))
	p := rule.NewProducer("p", "num num", 0, noopAction)
	cat.MustRegister(p)
	if _, err := cat.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.References) != 1 || p.References[0] != "num" {
		t.Errorf("References = %v, want [num] (deduplicated)", p.References)
	}
}
