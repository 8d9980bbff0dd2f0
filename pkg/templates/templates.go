package templates

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/prjconf/pkg/errors"
	"github.com/arthur-debert/prjconf/pkg/properties"
	"github.com/arthur-debert/prjconf/pkg/registry"
	"github.com/arthur-debert/prjconf/pkg/rules"
)

// DefaultTemplate is used when TEMPLATE is unset.
const DefaultTemplate = "app"

// ApplyFunc contributes a template's rules.
type ApplyFunc func(props *properties.Store, reg *rules.Registry) error

// Template is a named rule generator.
type Template struct {
	Name        string
	Description string
	Apply       ApplyFunc
}

// Registry holds the known templates.
type Registry struct {
	templates registry.Registry[Template]
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{templates: registry.New[Template]("template")}
}

// Default returns a registry with the built-in templates.
func Default() *Registry {
	r := NewRegistry()
	for _, t := range []Template{
		{Name: "app", Description: "link SOURCES into the TARGET executable", Apply: applyApp},
		{Name: "lib", Description: "archive SOURCES into the libTARGET.a static library", Apply: applyLib},
		{Name: "aux", Description: "no link step, only the all rule", Apply: applyAux},
		{Name: "subdirs", Description: "build each SUBDIRS entry with its own make", Apply: applySubdirs},
	} {
		registry.MustRegister(r.templates, t.Name, t)
	}
	return r
}

// Register adds a template.
func (r *Registry) Register(t Template) error {
	if t.Apply == nil {
		return errors.Newf(errors.ErrInvalidInput, "template %q has no apply function", t.Name)
	}
	return r.templates.Register(t.Name, t)
}

// Names returns the template names in alphabetical order.
func (r *Registry) Names() []string {
	return r.templates.Sorted()
}

// All returns the templates in alphabetical order.
func (r *Registry) All() []Template {
	names := r.Names()
	out := make([]Template, 0, len(names))
	for _, name := range names {
		out = append(out, registry.MustGet(r.templates, name))
	}
	return out
}

// Lookup returns the template called name, or an UNKNOWN_TEMPLATE error
// listing the available ones.
func (r *Registry) Lookup(name string) (Template, error) {
	t, err := r.templates.Get(name)
	if err != nil {
		available := r.Names()
		return Template{}, errors.Newf(errors.ErrUnknownTemplate,
			"unknown template %q, available: %s", name, strings.Join(available, ", ")).
			WithDetail("template", name).
			WithDetail("available", available)
	}
	return t, nil
}

func target(props *properties.Store) (string, error) {
	t := props.Value("TARGET")
	if t == "" {
		return "", errors.New(errors.ErrInvalidInput, "TARGET is not set")
	}
	return t, nil
}

func inputs(props *properties.Store) []string {
	var in []string
	for _, v := range []string{"SOURCES", "HEADERS", "FORMS", "RESOURCES"} {
		in = append(in, props.Values(v)...)
	}
	return in
}

func applyApp(props *properties.Store, reg *rules.Registry) error {
	name, err := target(props)
	if err != nil {
		return err
	}

	cmd := append([]string{"$(QMAKE_CXX)", "-o", name}, props.Values("SOURCES")...)
	cmd = append(cmd, props.Values("LIBS")...)

	reg.Rule(name).
		AddInputs(inputs(props)...).
		AddOutputs(name).
		AddCommands(strings.Join(cmd, " "))
	reg.Rule("all").DependsOn(name)
	return nil
}

func applyLib(props *properties.Store, reg *rules.Registry) error {
	name, err := target(props)
	if err != nil {
		return err
	}
	archive := "lib" + name + ".a"

	srcs := props.Values("SOURCES")
	objects := make([]string, len(srcs))
	for i, src := range srcs {
		objects[i] = strings.TrimSuffix(src, filepath.Ext(src)) + ".o"
	}

	r := reg.Rule(archive).
		AddInputs(inputs(props)...).
		AddOutputs(archive)
	if len(srcs) > 0 {
		r.AddCommands(strings.Join(append([]string{"$(QMAKE_CXX)", "-c"}, srcs...), " "))
	}
	r.AddCommands(strings.Join(append([]string{"$(QMAKE_AR)", archive}, objects...), " "))
	reg.Rule("all").DependsOn(archive)
	return nil
}

func applyAux(_ *properties.Store, reg *rules.Registry) error {
	reg.Rule("all")
	return nil
}

// applySubdirs chains the sub rules with hard prerequisites when CONFIG
// contains ordered, and with order-only ones otherwise.
func applySubdirs(props *properties.Store, reg *rules.Registry) error {
	ordered := props.Contains("CONFIG", "ordered")
	all := reg.Rule("all")

	prev := ""
	for _, dir := range props.Values("SUBDIRS") {
		name := "sub-" + strings.ReplaceAll(filepath.ToSlash(dir), "/", "-")
		r := reg.Rule(name).
			AddInputs(dir).
			AddCommands("$(MAKE) -C " + dir)
		if prev != "" {
			if ordered {
				r.DependsOn(prev)
			} else {
				r.After(prev)
			}
		}
		all.DependsOn(name)
		prev = name
	}
	return nil
}
