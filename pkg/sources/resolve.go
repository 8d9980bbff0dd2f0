package sources

import (
	"strings"

	"github.com/arthur-debert/prjconf/pkg/conditions"
	"github.com/arthur-debert/prjconf/pkg/errors"
	"github.com/arthur-debert/prjconf/pkg/logging"
	"github.com/arthur-debert/prjconf/pkg/project"
	"github.com/arthur-debert/prjconf/pkg/properties"
)

// ExtensionName is the name the resolver registers under.
const ExtensionName = "conditional_sources"

// Result records what happened to each group.
type Result struct {
	Included []string
	Excluded []string
	Skipped  []string

	// Warnings holds one MISSING_CONDITION error per skipped group.
	Warnings []error
}

// Resolve evaluates every group in the store and unites the lists of the
// groups whose condition holds into the global variables. Each condition
// sees the store as left by the groups before it.
func Resolve(store *properties.Store, eval conditions.Evaluator) (*Result, error) {
	logger := logging.GetLogger("sources")
	result := &Result{}

	for _, g := range Discover(store) {
		if strings.TrimSpace(g.Condition) == "" {
			result.Skipped = append(result.Skipped, g.Name)
			result.Warnings = append(result.Warnings,
				errors.Newf(errors.ErrMissingCondition, "conditional source group %q has no condition, skipping", g.Name).
					WithDetail("group", g.Name))
			continue
		}

		ok, err := eval.Evaluate(g.Condition, store.Snapshot())
		if err != nil {
			return result, errors.Wrapf(err, errors.ErrConditionEval, "condition of group %q failed", g.Name).
				WithDetail("group", g.Name).
				WithDetail("condition", g.Condition)
		}
		if !ok {
			logger.Debug().Str("group", g.Name).Str("condition", g.Condition).Msg("Condition false, group excluded")
			result.Excluded = append(result.Excluded, g.Name)
			continue
		}

		for _, l := range g.Ordered() {
			if err := store.Unite(l.Variable, l.Files...); err != nil {
				return result, err
			}
		}
		logger.Debug().Str("group", g.Name).Str("condition", g.Condition).Msg("Condition true, group included")
		result.Included = append(result.Included, g.Name)
	}

	return result, nil
}

// Extension returns the resolver as an extension. It runs before the
// template and rules extensions, which consume the aggregate lists.
func Extension(eval conditions.Evaluator) project.Extension {
	return project.Extension{
		Name:        ExtensionName,
		Description: "unite conditional source groups whose condition holds",
		RunBefore:   []string{"template", "rules"},
		Finalize: func(ctx *project.Context) error {
			result, err := Resolve(ctx.Properties(), eval)
			for _, w := range result.Warnings {
				ctx.Warn(w)
			}
			if err != nil {
				return err
			}
			ctx.Logger.Info().
				Strs("included", result.Included).
				Strs("excluded", result.Excluded).
				Strs("skipped", result.Skipped).
				Msg("Conditional sources resolved")
			return nil
		},
	}
}
