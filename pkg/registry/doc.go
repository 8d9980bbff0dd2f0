// Package registry provides a generic, type-safe registry that stores items
// by name and remembers the order in which they were registered.
//
// Registration order is significant: the project scheduler breaks ties
// between unconstrained extensions by it, so List returns names in that
// order rather than alphabetically. Use Sorted for display.
package registry
