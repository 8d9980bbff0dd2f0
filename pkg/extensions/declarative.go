package extensions

import (
	"github.com/arthur-debert/prjconf/pkg/config"
	"github.com/arthur-debert/prjconf/pkg/project"
	"github.com/arthur-debert/prjconf/pkg/properties"
	"github.com/arthur-debert/prjconf/pkg/rules"
	"github.com/arthur-debert/prjconf/pkg/sources"
)

// RulesName is the name of the extension adding the project's rules.
const RulesName = "rules"

// Declarative returns the extension described by cfg. Its finalize hook
// applies set, then append, then unite, then remove, each in property name
// order, and finally the rule contributions.
func Declarative(cfg config.ExtensionConfig) project.Extension {
	return project.Extension{
		Name:        cfg.Name,
		Description: cfg.Description,
		RunBefore:   cfg.RunBefore,
		RunAfter:    cfg.RunAfter,
		Finalize: func(ctx *project.Context) error {
			props := ctx.Properties()
			for _, edit := range []struct {
				values map[string][]string
				apply  func(string, ...string) error
			}{
				{cfg.Set, props.Set},
				{cfg.Append, props.Append},
				{cfg.Unite, props.Unite},
				{cfg.Remove, props.Remove},
			} {
				if err := applyEdits(edit.values, edit.apply); err != nil {
					return err
				}
			}

			for _, rc := range cfg.Rules {
				ApplyRule(ctx.Rules(), rc)
			}
			ctx.Logger.Debug().Int("rules", len(cfg.Rules)).Msg("Declarative extension applied")
			return nil
		},
	}
}

// Rules returns the extension adding rs to the rule registry. It runs after
// the conditional sources and the template.
func Rules(rs []config.RuleConfig) project.Extension {
	return project.Extension{
		Name:        RulesName,
		Description: "add the rules declared in the project file",
		RunAfter:    []string{sources.ExtensionName, "template"},
		Finalize: func(ctx *project.Context) error {
			for _, rc := range rs {
				ApplyRule(ctx.Rules(), rc)
			}
			return nil
		},
	}
}

// ApplyRule contributes rc to the rule of the same name.
func ApplyRule(reg *rules.Registry, rc config.RuleConfig) *rules.Rule {
	r := reg.Rule(rc.Name).
		AddInputs(rc.Inputs...).
		AddOutputs(rc.Outputs...).
		AddCommands(rc.Commands...).
		DependsOn(rc.Depends...).
		After(rc.OrderOnly...)
	if rc.Help != "" {
		r.SetHelp(rc.Help)
	}
	if rc.Serial {
		r.SetSerial(true)
	}
	return r
}

// Group converts a conditional source entry.
func Group(gc config.GroupConfig) *sources.Group {
	g := sources.NewGroup(gc.Name, gc.Condition)
	for _, l := range []struct {
		variable string
		files    []string
	}{
		{"HEADERS", gc.Headers},
		{"SOURCES", gc.Sources},
		{"FORMS", gc.Forms},
		{"RESOURCES", gc.Resources},
	} {
		if len(l.files) > 0 {
			g.Add(l.variable, l.files...)
		}
	}
	for _, variable := range config.SortedKeys(gc.Files) {
		g.Add(variable, gc.Files[variable]...)
	}
	return g
}

// Seed writes the configured properties and conditional source groups into
// store.
func Seed(store *properties.Store, cfg *config.Config) error {
	for _, name := range cfg.PropertyNames() {
		if err := store.Set(name, cfg.Properties[name]...); err != nil {
			return err
		}
	}
	if cfg.Template != "" {
		if err := store.Set("TEMPLATE", cfg.Template); err != nil {
			return err
		}
	}
	for _, gc := range cfg.ConditionalSources {
		if err := sources.Register(store, Group(gc)); err != nil {
			return err
		}
	}
	return nil
}

func applyEdits(values map[string][]string, apply func(string, ...string) error) error {
	for _, name := range config.SortedKeys(values) {
		if err := apply(name, values[name]...); err != nil {
			return err
		}
	}
	return nil
}
