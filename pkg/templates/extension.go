package templates

import (
	"github.com/arthur-debert/prjconf/pkg/errors"
	"github.com/arthur-debert/prjconf/pkg/project"
)

// ExtensionName is the name the template extension registers under.
const ExtensionName = "template"

// Extension applies the template named by the TEMPLATE property.
func Extension(reg *Registry) project.Extension {
	return project.Extension{
		Name:        ExtensionName,
		Description: "generate build rules for the selected TEMPLATE",
		RunBefore:   []string{"rules"},
		Finalize: func(ctx *project.Context) error {
			name := ctx.Properties().Value("TEMPLATE")
			if name == "" {
				name = DefaultTemplate
			}

			t, err := reg.Lookup(name)
			if err != nil {
				return err
			}

			ctx.Logger.Debug().Str("template", name).Msg("Applying template")
			if err := t.Apply(ctx.Properties(), ctx.Rules()); err != nil {
				return errors.Wrapf(err, errors.GetErrorCode(err), "template %q failed", name).
					WithDetail("template", name)
			}
			return nil
		},
	}
}
