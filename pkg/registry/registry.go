package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/arthur-debert/prjconf/pkg/errors"
)

// Registry stores named items and remembers the order they arrived in.
type Registry[T any] interface {
	// Register adds an item. Names are unique and non-empty.
	Register(name string, item T) error

	// Get retrieves an item, or a NOT_FOUND error.
	Get(name string) (T, error)

	// Has reports whether name is registered.
	Has(name string) bool

	// List returns names in registration order.
	List() []string

	// Sorted returns names in alphabetical order.
	Sorted() []string

	// Index returns the registration position of name, or -1.
	Index(name string) int

	// Count returns the number of registered items.
	Count() int
}

type registry[T any] struct {
	kind string

	mu    sync.RWMutex
	items map[string]T
	order []string
}

// New creates an empty registry. Kind names the items in error messages,
// e.g. "extension" or "template".
func New[T any](kind string) Registry[T] {
	return &registry[T]{
		kind:  kind,
		items: make(map[string]T),
	}
}

func (r *registry[T]) Register(name string, item T) error {
	if name == "" {
		return errors.Newf(errors.ErrInvalidInput, "%s name cannot be empty", r.kind).
			WithDetail("kind", r.kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[name]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "%s %q is already registered", r.kind, name).
			WithDetail("kind", r.kind).
			WithDetail("name", name)
	}

	r.items[name] = item
	r.order = append(r.order, name)
	return nil
}

func (r *registry[T]) Get(name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[name]
	if !exists {
		var zero T
		return zero, errors.Newf(errors.ErrNotFound, "%s %q is not registered", r.kind, name).
			WithDetail("kind", r.kind).
			WithDetail("name", name)
	}
	return item, nil
}

func (r *registry[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.items[name]
	return exists
}

func (r *registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

func (r *registry[T]) Sorted() []string {
	names := r.List()
	sort.Strings(names)
	return names
}

func (r *registry[T]) Index(name string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i, n := range r.order {
		if n == name {
			return i
		}
	}
	return -1
}

func (r *registry[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}

// MustRegister registers an item and panics on failure. Use it for
// built-in tables where a clash is a programming error.
func MustRegister[T any](reg Registry[T], name string, item T) {
	if err := reg.Register(name, item); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", name, err))
	}
}

// MustGet retrieves an item the caller knows is registered.
func MustGet[T any](reg Registry[T], name string) T {
	item, err := reg.Get(name)
	if err != nil {
		panic(fmt.Sprintf("failed to get %s: %v", name, err))
	}
	return item
}
