// Package extensions builds extensions from a project file.
//
// Declarative extensions apply their property edits and rule
// contributions when their finalize hook runs, so they take part in the
// same ordering as built-in extensions. The rules extension adds the
// project's [[rules]] entries after the template has generated its rules.
package extensions
