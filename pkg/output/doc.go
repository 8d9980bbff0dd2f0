// Package output renders configuration results for people and for the
// downstream build executor.
//
// The text format is styled with lipgloss for terminals; json, yaml and
// toml are meant for machines and carry the full rule and property data.
package output
