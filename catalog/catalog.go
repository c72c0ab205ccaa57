// Package catalog provides a process-wide interning registry of rules so
// that trait parsers can compose shared vocabulary without recompiling the
// same pattern twice. Building a parser copies rule references, never
// clones compiled regex state.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	re2 "github.com/wasilibs/go-re2"

	"github.com/fieldtraits/traitstack/rule"
)

var identPattern = re2.MustCompile(`\(\?&([a-zA-Z_][a-zA-Z0-9_]*)\)|\b([a-zA-Z_][a-zA-Z0-9_]*)\b`)

// Catalog is a keyed collection of rules. The zero value is usable.
type Catalog struct {
	rules map[string]*rule.Rule
	order []string // insertion order, for stable iteration
}

// New returns an empty Catalog.
func New() *Catalog {
	return &Catalog{rules: make(map[string]*rule.Rule)}
}

// Register interns a rule by name. Registering the same name twice with an
// identical rule pointer is a no-op; registering a different rule under an
// existing name is an error (names must be unique).
func (c *Catalog) Register(r *rule.Rule) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if existing, ok := c.rules[r.Name]; ok {
		if existing == r {
			return nil
		}
		return fmt.Errorf("catalog: duplicate rule name %q", r.Name)
	}
	if c.rules == nil {
		c.rules = make(map[string]*rule.Rule)
	}
	c.rules[r.Name] = r
	c.order = append(c.order, r.Name)
	return nil
}

// MustRegister registers a rule and panics on error. Intended for package
// init-time vocabulary construction where a failure is a programmer error.
func (c *Catalog) MustRegister(r *rule.Rule) *rule.Rule {
	if err := c.Register(r); err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the named rule, or nil if absent.
func (c *Catalog) Lookup(name string) *rule.Rule {
	return c.rules[name]
}

// Names returns all registered rule names, in insertion order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Rules returns a snapshot slice of every registered rule, in insertion
// order.
func (c *Catalog) Rules() []*rule.Rule {
	out := make([]*rule.Rule, 0, len(c.order))
	for _, n := range c.order {
		out = append(out, c.rules[n])
	}
	return out
}

// referencedTokenNames extracts candidate token-name identifiers out of a
// token-pattern body: either explicit (?&name) fragment references or bare
// identifiers used as pattern atoms.
func referencedTokenNames(body string) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range identPattern.FindAllStringSubmatch(body, -1) {
		name := m[1]
		if name == "" {
			name = m[2]
		}
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// Validate checks the build-time invariants from spec §3/§4.2/§9:
//   - every token name referenced inside a token-level rule must name
//     another registered rule or a declared Fragment capture group,
//   - the token-rule dependency graph (Grouper/Replacer/Producer rules
//     naming other rules) must be acyclic,
//   - a Replacer/Grouper whose own name also appears among its input
//     token names is rejected (self-reference cycle).
//
// It populates each rule's References field as a side effect, and returns
// a topologically sorted rule-name order usable to schedule passes.
func (c *Catalog) Validate() ([]string, error) {
	declaredGroups := map[string]bool{}
	for _, r := range c.rules {
		for _, g := range r.Groups {
			declaredGroups[g] = true
		}
	}

	deps := make(map[string][]string, len(c.rules))
	for _, name := range c.order {
		r := c.rules[name]
		if r.Kind != rule.Grouper && r.Kind != rule.Replacer && r.Kind != rule.Producer {
			continue
		}
		refs := referencedTokenNames(r.Body)
		var resolved []string
		for _, ref := range refs {
			if ref == name {
				return nil, fmt.Errorf("catalog: rule %q references itself, would create a cycle", name)
			}
			if c.rules[ref] == nil && !declaredGroups[ref] {
				return nil, fmt.Errorf("catalog: rule %q references unknown token or group %q", name, ref)
			}
			if c.rules[ref] != nil {
				resolved = append(resolved, ref)
			}
		}
		r.References = resolved
		deps[name] = resolved
	}

	order, err := topoSort(c.order, deps)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// topoSort orders names so that every rule appears after the rules it
// depends on, detecting cycles.
func topoSort(names []string, deps map[string][]string) ([]string, error) {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(names))
	var out []string
	var stack []string

	var visit func(n string) error
	visit = func(n string) error {
		switch color[n] {
		case black:
			return nil
		case gray:
			stack = append(stack, n)
			return fmt.Errorf("catalog: cyclic rule dependency: %s", strings.Join(stack, " -> "))
		}
		color[n] = gray
		stack = append(stack, n)
		dep := append([]string{}, deps[n]...)
		sort.Strings(dep)
		for _, d := range dep {
			if err := visit(d); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		color[n] = black
		out = append(out, n)
		return nil
	}

	for _, n := range names {
		if err := visit(n); err != nil {
			return nil, err
		}
	}
	return out, nil
}
