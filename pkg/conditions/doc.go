// Package conditions evaluates the boolean conditions attached to
// conditional source groups.
//
// Evaluation is a strategy: anything implementing Evaluator can be injected
// into the resolver. The default implementation, HCL, parses conditions as
// HCL expressions over the current property snapshot:
//
//	contains(CONFIG, "widgets") && !isEmpty(QT)
//	scalar("TEMPLATE") == "app"
//	length(value("widgets.SOURCES")) > 0
//
// Properties whose names are plain identifiers are exposed as list
// variables. Unset identifiers are empty lists rather than errors, so a
// condition can test for variables no extension has defined yet.
package conditions
