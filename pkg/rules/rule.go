package rules

import "fmt"

// Prerequisite is a dependency edge to another rule.
type Prerequisite struct {
	Name      string `json:"name" yaml:"name" toml:"name"`
	OrderOnly bool   `json:"order_only,omitempty" yaml:"order_only,omitempty" toml:"order_only,omitempty"`
}

// Rule is a named build action.
type Rule struct {
	Name          string         `json:"name" yaml:"name" toml:"name"`
	Inputs        []string       `json:"inputs,omitempty" yaml:"inputs,omitempty" toml:"inputs,omitempty"`
	Outputs       []string       `json:"outputs,omitempty" yaml:"outputs,omitempty" toml:"outputs,omitempty"`
	Commands      []string       `json:"commands,omitempty" yaml:"commands,omitempty" toml:"commands,omitempty"`
	Prerequisites []Prerequisite `json:"prerequisites,omitempty" yaml:"prerequisites,omitempty" toml:"prerequisites,omitempty"`
	Help          string         `json:"help,omitempty" yaml:"help,omitempty" toml:"help,omitempty"`
	Serial        bool           `json:"serial,omitempty" yaml:"serial,omitempty" toml:"serial,omitempty"`
}

// String provides a simple representation for debugging.
func (r *Rule) String() string {
	return fmt.Sprintf("Rule(%s, inputs: %v, outputs: %v, commands: %d)", r.Name, r.Inputs, r.Outputs, len(r.Commands))
}

// AddInputs unites files into the input list.
func (r *Rule) AddInputs(files ...string) *Rule {
	r.Inputs = unite(r.Inputs, files)
	return r
}

// AddOutputs unites files into the output list.
func (r *Rule) AddOutputs(files ...string) *Rule {
	r.Outputs = unite(r.Outputs, files)
	return r
}

// AddCommands appends commands. Repeated commands are kept.
func (r *Rule) AddCommands(commands ...string) *Rule {
	r.Commands = append(r.Commands, commands...)
	return r
}

// DependsOn adds hard prerequisites. A prerequisite that was order-only is
// upgraded.
func (r *Rule) DependsOn(names ...string) *Rule {
	for _, name := range names {
		r.addPrerequisite(name, false)
	}
	return r
}

// After adds order-only prerequisites. Existing hard prerequisites are left
// as they are.
func (r *Rule) After(names ...string) *Rule {
	for _, name := range names {
		r.addPrerequisite(name, true)
	}
	return r
}

// SetHelp sets the help text.
func (r *Rule) SetHelp(help string) *Rule {
	r.Help = help
	return r
}

// SetSerial marks the rule as not runnable concurrently with its siblings.
func (r *Rule) SetSerial(serial bool) *Rule {
	r.Serial = serial
	return r
}

// PrerequisiteNames returns the names of all prerequisites in insertion order.
func (r *Rule) PrerequisiteNames() []string {
	names := make([]string, len(r.Prerequisites))
	for i, p := range r.Prerequisites {
		names[i] = p.Name
	}
	return names
}

// HasPrerequisite reports whether name is a prerequisite of r.
func (r *Rule) HasPrerequisite(name string) bool {
	for _, p := range r.Prerequisites {
		if p.Name == name {
			return true
		}
	}
	return false
}

func (r *Rule) addPrerequisite(name string, orderOnly bool) {
	for i := range r.Prerequisites {
		if r.Prerequisites[i].Name == name {
			if !orderOnly {
				r.Prerequisites[i].OrderOnly = false
			}
			return
		}
	}
	r.Prerequisites = append(r.Prerequisites, Prerequisite{Name: name, OrderOnly: orderOnly})
}

func unite(list, values []string) []string {
	for _, v := range values {
		found := false
		for _, existing := range list {
			if existing == v {
				found = true
				break
			}
		}
		if !found {
			list = append(list, v)
		}
	}
	return list
}
