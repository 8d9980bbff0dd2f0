package config

import (
	"sort"
)

// Config is a decoded project file.
type Config struct {
	Name     string       `koanf:"name"`
	Template string       `koanf:"template"`
	Output   OutputConfig `koanf:"output"`

	// Properties maps dotted property paths to their values. Nested tables
	// in the file become dotted paths.
	Properties map[string][]string `koanf:"-"`

	ConditionalSources []GroupConfig     `koanf:"conditional_sources"`
	Rules              []RuleConfig      `koanf:"rules"`
	Extensions         []ExtensionConfig `koanf:"extensions"`

	// Disable names built-in extensions that are not registered.
	Disable []string `koanf:"disable"`

	// Dir is the project directory, File the project file that was loaded
	// or empty when only defaults apply.
	Dir  string `koanf:"-"`
	File string `koanf:"-"`
}

// OutputConfig selects the renderer.
type OutputConfig struct {
	Format string `koanf:"format"`
}

// GroupConfig is a [[conditional_sources]] entry.
type GroupConfig struct {
	Name      string              `koanf:"name"`
	Condition string              `koanf:"condition"`
	Headers   []string            `koanf:"headers"`
	Sources   []string            `koanf:"sources"`
	Forms     []string            `koanf:"forms"`
	Resources []string            `koanf:"resources"`
	Files     map[string][]string `koanf:"files"`
}

// RuleConfig is a [[rules]] entry, or a rule contribution of a
// declarative extension.
type RuleConfig struct {
	Name      string   `koanf:"name"`
	Inputs    []string `koanf:"inputs"`
	Outputs   []string `koanf:"outputs"`
	Commands  []string `koanf:"commands"`
	Depends   []string `koanf:"depends"`
	OrderOnly []string `koanf:"order_only"`
	Help      string   `koanf:"help"`
	Serial    bool     `koanf:"serial"`
}

// ExtensionConfig is a declarative [[extensions]] entry. Its effects are
// applied when its finalize hook runs.
type ExtensionConfig struct {
	Name        string              `koanf:"name"`
	Description string              `koanf:"description"`
	RunBefore   []string            `koanf:"run_before"`
	RunAfter    []string            `koanf:"run_after"`
	Set         map[string][]string `koanf:"set"`
	Append      map[string][]string `koanf:"append"`
	Unite       map[string][]string `koanf:"unite"`
	Remove      map[string][]string `koanf:"remove"`
	Rules       []RuleConfig        `koanf:"rules"`
}

// PropertyNames returns the configured property paths in sorted order.
func (c *Config) PropertyNames() []string {
	return SortedKeys(c.Properties)
}

// IsDisabled reports whether a built-in extension was disabled.
func (c *Config) IsDisabled(name string) bool {
	for _, d := range c.Disable {
		if d == name {
			return true
		}
	}
	return false
}

// SortedKeys returns the keys of m in sorted order.
func SortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
