package project

import (
	"github.com/arthur-debert/prjconf/pkg/errors"
	"github.com/arthur-debert/prjconf/pkg/logging"
	"github.com/arthur-debert/prjconf/pkg/properties"
	"github.com/arthur-debert/prjconf/pkg/registry"
	"github.com/arthur-debert/prjconf/pkg/rules"
	"github.com/arthur-debert/prjconf/pkg/schedule"
	"github.com/rs/zerolog"
)

type phase int

const (
	phaseRegistering phase = iota
	phaseInit
	phaseFinalize
)

// Project is the shared state of one configuration pass.
type Project struct {
	Name string

	props      *properties.Store
	rules      *rules.Registry
	extensions registry.Registry[*Extension]

	phase      phase
	initDone   map[string]bool
	done       map[string]bool
	executed   []string
	warnings   []error
	generation int

	logger zerolog.Logger
}

// Report summarises a configuration pass.
type Report struct {
	// Order lists the finalize hooks in the order they ran.
	Order []string

	// Warnings holds non-fatal problems, such as conditional source groups
	// without a condition.
	Warnings []error
}

// New creates a project with empty state.
func New(name string) *Project {
	return &Project{
		Name:       name,
		props:      properties.New(),
		rules:      rules.NewRegistry(),
		extensions: registry.New[*Extension]("extension"),
		initDone:   make(map[string]bool),
		done:       make(map[string]bool),
		logger:     logging.GetLogger("project").With().Str("project", name).Logger(),
	}
}

// Properties returns the property store.
func (p *Project) Properties() *properties.Store { return p.props }

// Rules returns the rule registry.
func (p *Project) Rules() *rules.Registry { return p.rules }

// Extensions returns registered extension names in registration order.
func (p *Project) Extensions() []string { return p.extensions.List() }

// Extension returns a registered extension.
func (p *Project) Extension(name string) (Extension, bool) {
	ext, err := p.extensions.Get(name)
	if err != nil {
		return Extension{}, false
	}
	return *ext, true
}

// Register adds an extension. Names must be unique. During the finalize
// phase the extension's Init runs immediately.
func (p *Project) Register(ext Extension) error {
	stored := ext
	stored.RunBefore = append([]string(nil), ext.RunBefore...)
	stored.RunAfter = append([]string(nil), ext.RunAfter...)

	if err := p.extensions.Register(ext.Name, &stored); err != nil {
		return err
	}
	p.generation++

	p.logger.Debug().
		Str("extension", ext.Name).
		Strs("runBefore", stored.RunBefore).
		Strs("runAfter", stored.RunAfter).
		Bool("finalize", ext.Finalize != nil).
		Msg("Extension registered")

	if p.phase == phaseFinalize {
		return p.runInit(&stored)
	}
	return nil
}

// Schedule returns the order in which pending and finished finalize hooks
// would run, without running any of them.
func (p *Project) Schedule() ([]string, error) {
	order, _, err := p.sortExtensions()
	if err != nil {
		return nil, err
	}
	return p.withFinalize(order), nil
}

// Configure runs the init phase and then every pending finalize hook.
// Any hook error or ordering cycle aborts the pass.
func (p *Project) Configure() (*Report, error) {
	done := logging.LogOperationStart(p.logger, "configure")
	defer done()

	p.phase = phaseInit
	for i := 0; ; i++ {
		names := p.extensions.List()
		if i >= len(names) {
			break
		}
		ext := registry.MustGet(p.extensions, names[i])
		if err := p.runInit(ext); err != nil {
			return p.report(), err
		}
	}

	p.phase = phaseFinalize
	if err := p.runFinalizers(); err != nil {
		return p.report(), err
	}

	p.logger.Info().Strs("order", p.executed).Int("warnings", len(p.warnings)).Msg("Configuration pass complete")
	return p.report(), nil
}

func (p *Project) runInit(ext *Extension) error {
	if p.initDone[ext.Name] {
		return nil
	}
	p.initDone[ext.Name] = true
	if ext.Init == nil {
		return nil
	}

	p.logger.Trace().Str("extension", ext.Name).Msg("Running init hook")
	if err := ext.Init(p.newContext(ext.Name)); err != nil {
		return errors.Wrapf(err, errors.ErrHookFailed, "init of extension %q failed", ext.Name).
			WithDetail("extension", ext.Name).
			WithDetail("phase", "init")
	}
	return nil
}

func (p *Project) runFinalizers() error {
	var (
		order []string
		graph *schedule.Graph
		gen   = -1
	)

	for {
		if gen != p.generation {
			var err error
			order, graph, err = p.sortExtensions()
			if err != nil {
				return err
			}
			gen = p.generation
		}

		next := p.nextPending(order)
		if next == nil {
			return nil
		}

		for _, later := range graph.Successors(next.Name) {
			if p.done[later] {
				err := errors.Newf(errors.ErrOrderViolation,
					"extension %q should run before %q, which already ran", next.Name, later).
					WithDetail("extension", next.Name).
					WithDetail("before", later)
				p.newContext(next.Name).Warn(err)
			}
		}

		p.done[next.Name] = true
		p.executed = append(p.executed, next.Name)

		p.logger.Debug().Str("extension", next.Name).Int("position", len(p.executed)).Msg("Running finalize hook")
		if err := next.Finalize(p.newContext(next.Name)); err != nil {
			return errors.Wrapf(err, errors.ErrHookFailed, "finalize of extension %q failed", next.Name).
				WithDetail("extension", next.Name).
				WithDetail("phase", "finalize")
		}
	}
}

func (p *Project) nextPending(order []string) *Extension {
	for _, name := range order {
		if p.done[name] {
			continue
		}
		ext := registry.MustGet(p.extensions, name)
		if ext.Finalize != nil {
			return ext
		}
	}
	return nil
}

// sortExtensions orders every registered extension, including those
// without a Finalize hook so their constraints still apply transitively.
func (p *Project) sortExtensions() ([]string, *schedule.Graph, error) {
	g := schedule.New()
	names := p.extensions.List()
	for _, name := range names {
		g.AddNode(name)
	}

	for _, name := range names {
		ext := registry.MustGet(p.extensions, name)
		for _, before := range ext.RunBefore {
			if !g.Has(before) {
				p.logger.Debug().Str("extension", name).Str("runBefore", before).Msg("Ignoring ordering against unregistered extension")
				continue
			}
			if err := g.AddEdge(name, before); err != nil {
				return nil, nil, err
			}
		}
		for _, after := range ext.RunAfter {
			if !g.Has(after) {
				p.logger.Debug().Str("extension", name).Str("runAfter", after).Msg("Ignoring ordering against unregistered extension")
				continue
			}
			if err := g.AddEdge(after, name); err != nil {
				return nil, nil, err
			}
		}
	}

	order, err := g.Sort()
	if err != nil {
		p.logger.Error().Err(err).Msg("Extension ordering failed")
		return nil, nil, err
	}
	return order, g, nil
}

func (p *Project) withFinalize(order []string) []string {
	out := make([]string, 0, len(order))
	for _, name := range order {
		if registry.MustGet(p.extensions, name).Finalize != nil {
			out = append(out, name)
		}
	}
	return out
}

func (p *Project) newContext(extension string) *Context {
	return &Context{
		project:   p,
		extension: extension,
		Logger:    p.logger.With().Str("extension", extension).Logger(),
	}
}

func (p *Project) report() *Report {
	return &Report{
		Order:    append([]string(nil), p.executed...),
		Warnings: append([]error(nil), p.warnings...),
	}
}
