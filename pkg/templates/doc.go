// Package templates turns the TEMPLATE property into build rules.
//
// Each template reads the aggregate lists (SOURCES, HEADERS, ...) and
// contributes rules to the project. The template extension runs after the
// conditional sources are resolved and before user rules are added.
package templates
