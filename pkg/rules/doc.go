// Package rules holds the build rules a configuration pass produces for the
// downstream executor.
//
// A rule is a named action with input files, output files, an ordered list
// of commands and prerequisite rules. Rules are get-or-create: every hook
// asking for "image" receives the same *Rule, so contributions from several
// extensions accumulate on one object. Commands are appended in the order
// the contributions happen, which is the finalize schedule order.
//
// Prerequisites are either hard (the prerequisite must be rebuilt first and
// its outputs are inputs of this rule) or order-only (it must merely have
// run first).
package rules
