// Package properties implements the project property store: a hierarchical
// namespace of named values addressed by dotted paths such as
// "QMAKE.FINALIZE" or "widgets.SOURCES".
//
// Every property holds an ordered list of strings. The scalar view of a
// property is that list joined by single spaces, so a property written with
// Set("TARGET", "phone") reads back as "phone" through Value and as
// []string{"phone"} through Values. Reads of unset properties never fail:
// they return "" or an empty list.
//
// Write operations:
//
//   - Set replaces the value.
//   - Append adds values to the end, duplicates allowed.
//   - Unite adds only values not already present, keeping first-seen order.
//   - Remove drops every occurrence of the given values.
//
// A property comes into existence on its first write and is never deleted
// during a configuration pass. The store is not safe for concurrent use;
// a pass runs its hooks strictly one after another.
package properties
