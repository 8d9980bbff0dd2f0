package properties

import (
	"strings"

	"github.com/arthur-debert/prjconf/pkg/errors"
)

// Separator splits hierarchical property paths.
const Separator = "."

// Store holds the properties of one project.
type Store struct {
	values map[string][]string
	order  []string
}

// New creates an empty store.
func New() *Store {
	return &Store{values: make(map[string][]string)}
}

// ValidatePath reports whether path is usable as a property name: non-empty,
// no empty segments and no whitespace.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "property path cannot be empty")
	}
	if strings.ContainsAny(path, " \t\r\n") {
		return errors.Newf(errors.ErrInvalidInput, "property path %q contains whitespace", path).
			WithDetail("path", path)
	}
	for _, seg := range strings.Split(path, Separator) {
		if seg == "" {
			return errors.Newf(errors.ErrInvalidInput, "property path %q has an empty segment", path).
				WithDetail("path", path)
		}
	}
	return nil
}

// Lookup returns a copy of the values of path and whether it was ever written.
func (s *Store) Lookup(path string) ([]string, bool) {
	vals, ok := s.values[path]
	if !ok {
		return nil, false
	}
	return clone(vals), true
}

// Values returns the list view of path. Unset properties yield an empty,
// non-nil slice.
func (s *Store) Values(path string) []string {
	vals, ok := s.values[path]
	if !ok {
		return []string{}
	}
	return clone(vals)
}

// Value returns the scalar view of path.
func (s *Store) Value(path string) string {
	return strings.Join(s.values[path], " ")
}

// IsSet reports whether path has been written.
func (s *Store) IsSet(path string) bool {
	_, ok := s.values[path]
	return ok
}

// IsEmpty reports whether path is unset or holds no values.
func (s *Store) IsEmpty(path string) bool {
	return len(s.values[path]) == 0
}

// Contains reports whether value is one of the values of path.
func (s *Store) Contains(path, value string) bool {
	return indexOf(s.values[path], value) >= 0
}

// Set replaces the value of path.
func (s *Store) Set(path string, values ...string) error {
	if err := s.touch(path); err != nil {
		return err
	}
	s.values[path] = clone(values)
	return nil
}

// Append adds values to the end of path, keeping duplicates.
func (s *Store) Append(path string, values ...string) error {
	if err := s.touch(path); err != nil {
		return err
	}
	s.values[path] = append(s.values[path], values...)
	return nil
}

// Unite adds each value not already present in path. Values repeated within
// the argument list are added once.
func (s *Store) Unite(path string, values ...string) error {
	if err := s.touch(path); err != nil {
		return err
	}
	current := s.values[path]
	for _, v := range values {
		if indexOf(current, v) < 0 {
			current = append(current, v)
		}
	}
	s.values[path] = current
	return nil
}

// Remove drops every occurrence of values from path. The property itself
// stays defined.
func (s *Store) Remove(path string, values ...string) error {
	if err := s.touch(path); err != nil {
		return err
	}
	current := s.values[path]
	kept := current[:0]
	for _, v := range current {
		if indexOf(values, v) < 0 {
			kept = append(kept, v)
		}
	}
	s.values[path] = kept
	return nil
}

// Names returns every written path in first-creation order.
func (s *Store) Names() []string {
	return clone(s.order)
}

// Children returns the distinct path segments directly below prefix, in the
// order they were first created. An empty prefix lists the top-level
// segments.
func (s *Store) Children(prefix string) []string {
	var children []string
	seen := make(map[string]bool)
	for _, name := range s.order {
		rest := name
		if prefix != "" {
			if !strings.HasPrefix(name, prefix+Separator) {
				continue
			}
			rest = name[len(prefix)+len(Separator):]
		}
		child, _, _ := strings.Cut(rest, Separator)
		if !seen[child] {
			seen[child] = true
			children = append(children, child)
		}
	}
	return children
}

// Snapshot returns a deep copy of every property.
func (s *Store) Snapshot() Snapshot {
	snap := make(Snapshot, len(s.values))
	for name, vals := range s.values {
		snap[name] = clone(vals)
	}
	return snap
}

func (s *Store) touch(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	if _, ok := s.values[path]; !ok {
		s.values[path] = []string{}
		s.order = append(s.order, path)
	}
	return nil
}

// Snapshot is a read-only copy of a store, handed to condition evaluators.
type Snapshot map[string][]string

// Values returns the list view of path.
func (s Snapshot) Values(path string) []string {
	if vals, ok := s[path]; ok {
		return vals
	}
	return []string{}
}

// Value returns the scalar view of path.
func (s Snapshot) Value(path string) string {
	return strings.Join(s[path], " ")
}

func indexOf(list []string, value string) int {
	for i, v := range list {
		if v == value {
			return i
		}
	}
	return -1
}

func clone(list []string) []string {
	out := make([]string, len(list))
	copy(out, list)
	return out
}
