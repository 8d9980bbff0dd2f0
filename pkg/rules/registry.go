package rules

import (
	"github.com/arthur-debert/prjconf/pkg/errors"
)

// Registry stores the rules of one project scope.
type Registry struct {
	rules map[string]*Rule
	order []string
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]*Rule)}
}

// Rule returns the rule called name, creating it on first use. Repeated
// calls return the same object.
func (r *Registry) Rule(name string) *Rule {
	if rule, ok := r.rules[name]; ok {
		return rule
	}
	rule := &Rule{Name: name}
	r.rules[name] = rule
	r.order = append(r.order, name)
	return rule
}

// Lookup returns an existing rule without creating it.
func (r *Registry) Lookup(name string) (*Rule, bool) {
	rule, ok := r.rules[name]
	return rule, ok
}

// Names returns rule names in creation order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// All returns every rule in creation order.
func (r *Registry) All() []*Rule {
	all := make([]*Rule, 0, len(r.order))
	for _, name := range r.order {
		all = append(all, r.rules[name])
	}
	return all
}

// Count returns the number of rules.
func (r *Registry) Count() int {
	return len(r.order)
}

// Validate checks that every prerequisite names a rule in the registry. The
// first dangling reference is reported.
func (r *Registry) Validate() error {
	for _, name := range r.order {
		for _, p := range r.rules[name].Prerequisites {
			if _, ok := r.rules[p.Name]; !ok {
				return errors.Newf(errors.ErrNotFound, "rule %q depends on unknown rule %q", name, p.Name).
					WithDetail("rule", name).
					WithDetail("prerequisite", p.Name)
			}
		}
	}
	return nil
}
