// Package core runs a configuration pass for a project directory.
//
// Configure loads the project file, seeds the property store, registers
// the built-in extensions (conditional_sources, template, rules) together
// with the project's declarative extensions, runs every hook and collects
// the outcome in a Result that the output renderers understand.
package core
