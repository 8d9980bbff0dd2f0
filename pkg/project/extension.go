package project

import (
	"github.com/arthur-debert/prjconf/pkg/properties"
	"github.com/arthur-debert/prjconf/pkg/rules"
	"github.com/rs/zerolog"
)

// Hook is an extension callback.
type Hook func(ctx *Context) error

// Extension is a named unit of configuration logic.
type Extension struct {
	Name        string
	Description string

	// Init runs during the init phase, in registration order.
	Init Hook

	// Finalize runs once, after every Init, in dependency order.
	Finalize Hook

	// RunBefore names extensions whose Finalize must run after this one.
	RunBefore []string

	// RunAfter names extensions whose Finalize must run before this one.
	RunAfter []string
}

// Context is handed to hooks.
type Context struct {
	project   *Project
	extension string
	Logger    zerolog.Logger
}

// Extension returns the name of the extension whose hook is running.
func (c *Context) Extension() string { return c.extension }

// Project returns the project being configured.
func (c *Context) Project() *Project { return c.project }

// Properties returns the project property store.
func (c *Context) Properties() *properties.Store { return c.project.props }

// Rules returns the project rule registry.
func (c *Context) Rules() *rules.Registry { return c.project.rules }

// Register adds an extension while the pass is running.
func (c *Context) Register(ext Extension) error { return c.project.Register(ext) }

// Warn records a non-fatal problem in the pass report.
func (c *Context) Warn(err error) {
	c.Logger.Warn().Err(err).Msg("Configuration warning")
	c.project.warnings = append(c.project.warnings, err)
}
