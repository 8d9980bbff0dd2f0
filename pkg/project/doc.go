// Package project runs one configuration pass over a project.
//
// A Project owns the property store, the rule registry and the registered
// extensions. An extension contributes an optional Init hook, run in
// registration order, and an optional Finalize hook, run once every
// extension has initialised and ordered by the RunBefore / RunAfter
// constraints of all extensions:
//
//	p := project.New("phone")
//	_ = p.Register(project.Extension{Name: "a", Finalize: fa})
//	_ = p.Register(project.Extension{Name: "b", Finalize: fb, RunAfter: []string{"a"}})
//	_ = p.Register(project.Extension{Name: "c", Finalize: fc, RunBefore: []string{"a"}})
//	report, err := p.Configure() // runs c, a, b
//
// Finalize hooks may register further extensions. Their Init runs at once
// and their Finalize joins the pending work; the order is recomputed before
// the next hook runs, so a cycle introduced late is still reported.
//
// Each Finalize runs at most once per project. Calling Configure again only
// runs hooks that have not run yet.
package project
