package core

import (
	"github.com/arthur-debert/prjconf/pkg/conditions"
	"github.com/arthur-debert/prjconf/pkg/config"
	"github.com/arthur-debert/prjconf/pkg/errors"
	"github.com/arthur-debert/prjconf/pkg/extensions"
	"github.com/arthur-debert/prjconf/pkg/logging"
	"github.com/arthur-debert/prjconf/pkg/project"
	"github.com/arthur-debert/prjconf/pkg/rules"
	"github.com/arthur-debert/prjconf/pkg/sources"
	"github.com/arthur-debert/prjconf/pkg/templates"
)

// Options control a configuration pass.
type Options struct {
	// Path is a project file or directory. Ignored when Config is set.
	Path string

	// Config is an already loaded configuration.
	Config *config.Config

	// Evaluator decides conditional source groups. Defaults to the HCL
	// evaluator.
	Evaluator conditions.Evaluator

	// Templates defaults to templates.Default().
	Templates *templates.Registry

	// Extensions are registered after the built-in and declarative ones.
	Extensions []project.Extension

	// Strict makes prerequisites naming unknown rules an error.
	Strict bool
}

// Property is one entry of the final property store.
type Property struct {
	Name   string   `json:"name" yaml:"name" toml:"name"`
	Values []string `json:"values" yaml:"values" toml:"values"`
}

// Result is the outcome of a configuration pass.
type Result struct {
	Project    string        `json:"project" yaml:"project" toml:"project"`
	Template   string        `json:"template" yaml:"template" toml:"template"`
	Order      []string      `json:"order" yaml:"order" toml:"order"`
	Properties []Property    `json:"properties" yaml:"properties" toml:"properties"`
	Rules      []*rules.Rule `json:"rules" yaml:"rules" toml:"rules"`
	Warnings   []string      `json:"warnings" yaml:"warnings" toml:"warnings"`
}

// Configure runs one configuration pass.
func Configure(opts Options) (*Result, error) {
	logger := logging.GetLogger("core")

	p, _, err := Build(opts)
	if err != nil {
		return nil, err
	}

	report, err := p.Configure()
	if err != nil {
		logger.Error().Err(err).Str("project", p.Name).Msg("Configuration pass failed")
		return nil, err
	}

	if opts.Strict {
		if err := p.Rules().Validate(); err != nil {
			return nil, err
		}
	}

	result := &Result{
		Project:  p.Name,
		Template: p.Properties().Value("TEMPLATE"),
		Order:    report.Order,
		Rules:    p.Rules().All(),
		Warnings: make([]string, 0, len(report.Warnings)),
	}
	for _, name := range p.Properties().Names() {
		result.Properties = append(result.Properties, Property{Name: name, Values: p.Properties().Values(name)})
	}
	for _, w := range report.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	logger.Info().
		Str("project", result.Project).
		Int("rules", len(result.Rules)).
		Int("warnings", len(result.Warnings)).
		Msg("Project configured")
	return result, nil
}

// Schedule returns the finalize order without running any hook.
func Schedule(opts Options) ([]string, error) {
	p, _, err := Build(opts)
	if err != nil {
		return nil, err
	}
	return p.Schedule()
}

// Build loads the configuration when needed and returns a project with its
// properties seeded and every extension registered.
func Build(opts Options) (*project.Project, *config.Config, error) {
	logger := logging.GetLogger("core")

	cfg := opts.Config
	if cfg == nil {
		var err error
		if cfg, err = config.Load(opts.Path); err != nil {
			return nil, nil, err
		}
	}

	p := project.New(cfg.Name)
	if err := extensions.Seed(p.Properties(), cfg); err != nil {
		return nil, nil, err
	}
	if !p.Properties().IsSet("TARGET") {
		if err := p.Properties().Set("TARGET", cfg.Name); err != nil {
			return nil, nil, err
		}
	}

	eval := opts.Evaluator
	if eval == nil {
		eval = conditions.NewHCL()
	}
	tmpl := opts.Templates
	if tmpl == nil {
		tmpl = templates.Default()
	}

	var exts []project.Extension
	for _, builtin := range []project.Extension{
		sources.Extension(eval),
		templates.Extension(tmpl),
	} {
		if cfg.IsDisabled(builtin.Name) {
			logger.Debug().Str("extension", builtin.Name).Msg("Built-in extension disabled")
			continue
		}
		exts = append(exts, builtin)
	}
	for _, ec := range cfg.Extensions {
		exts = append(exts, extensions.Declarative(ec))
	}
	if !cfg.IsDisabled(extensions.RulesName) {
		exts = append(exts, extensions.Rules(cfg.Rules))
	}
	exts = append(exts, opts.Extensions...)

	for _, ext := range exts {
		if err := p.Register(ext); err != nil {
			return nil, nil, errors.Wrapf(err, errors.GetErrorCode(err), "cannot register extension %q", ext.Name).
				WithDetail("extension", ext.Name)
		}
	}

	return p, cfg, nil
}
