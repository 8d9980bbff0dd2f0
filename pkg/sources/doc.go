// Package sources resolves conditional source groups.
//
// A group is a set of file lists guarded by a condition. Groups live in the
// property store under their own prefix:
//
//	widgets.TYPE      = CONDITIONAL_SOURCES
//	widgets.condition = contains(CONFIG, "widgets")
//	widgets.SOURCES   = w.cpp
//	widgets.HEADERS   = w.h
//
// When the condition holds, every list is united into the global variable
// of the same name. A group without a condition is reported as a warning
// and contributes nothing.
package sources
