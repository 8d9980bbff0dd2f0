package sources

import (
	"strings"

	"github.com/arthur-debert/prjconf/pkg/errors"
	"github.com/arthur-debert/prjconf/pkg/properties"
)

const (
	// GroupType marks a property prefix as a conditional source group.
	GroupType = "CONDITIONAL_SOURCES"

	typeKey      = "TYPE"
	conditionKey = "condition"
)

// Categories are united first, in this order.
var Categories = []string{"HEADERS", "SOURCES", "FORMS", "RESOURCES"}

// FileList is one variable of a group.
type FileList struct {
	Variable string   `json:"variable" yaml:"variable" toml:"variable"`
	Files    []string `json:"files" yaml:"files" toml:"files"`
}

// Group is a conditional source group.
type Group struct {
	Name      string     `json:"name" yaml:"name" toml:"name"`
	Condition string     `json:"condition,omitempty" yaml:"condition,omitempty" toml:"condition,omitempty"`
	Lists     []FileList `json:"lists" yaml:"lists" toml:"lists"`
}

// NewGroup returns an empty group.
func NewGroup(name, condition string) *Group {
	return &Group{Name: name, Condition: condition}
}

// Add unites files into the group's list for variable.
func (g *Group) Add(variable string, files ...string) *Group {
	for i := range g.Lists {
		if g.Lists[i].Variable == variable {
			g.Lists[i].Files = unite(g.Lists[i].Files, files)
			return g
		}
	}
	g.Lists = append(g.Lists, FileList{Variable: variable, Files: unite(nil, files)})
	return g
}

// Files returns the list for variable.
func (g *Group) Files(variable string) []string {
	for _, l := range g.Lists {
		if l.Variable == variable {
			return l.Files
		}
	}
	return nil
}

// Ordered returns the lists with the well-known categories first, then the
// remaining variables in the order they were added.
func (g *Group) Ordered() []FileList {
	out := make([]FileList, 0, len(g.Lists))
	for _, cat := range Categories {
		for _, l := range g.Lists {
			if l.Variable == cat {
				out = append(out, l)
			}
		}
	}
	for _, l := range g.Lists {
		if !isCategory(l.Variable) {
			out = append(out, l)
		}
	}
	return out
}

// Register writes g into the store.
func Register(store *properties.Store, g *Group) error {
	if g == nil || g.Name == "" {
		return errors.New(errors.ErrInvalidInput, "conditional source group needs a name")
	}
	if strings.Contains(g.Name, ".") {
		return errors.Newf(errors.ErrInvalidInput, "conditional source group name %q must be a single path segment", g.Name).
			WithDetail("group", g.Name)
	}
	if err := store.Set(g.Name+"."+typeKey, GroupType); err != nil {
		return err
	}
	if g.Condition != "" {
		if err := store.Set(g.Name+"."+conditionKey, g.Condition); err != nil {
			return err
		}
	}
	for _, l := range g.Lists {
		if err := store.Unite(g.Name+"."+l.Variable, l.Files...); err != nil {
			return err
		}
	}
	return nil
}

// Discover reads every group from the store, in property creation order.
func Discover(store *properties.Store) []*Group {
	var groups []*Group
	for _, name := range store.Children("") {
		if store.Value(name+"."+typeKey) != GroupType {
			continue
		}
		g := NewGroup(name, store.Value(name+"."+conditionKey))
		for _, child := range store.Children(name) {
			if child == typeKey || child == conditionKey {
				continue
			}
			g.Add(child, store.Values(name+"."+child)...)
		}
		groups = append(groups, g)
	}
	return groups
}

func isCategory(variable string) bool {
	for _, c := range Categories {
		if c == variable {
			return true
		}
	}
	return false
}

func unite(list, values []string) []string {
	for _, v := range values {
		found := false
		for _, have := range list {
			if have == v {
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
