package sources_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/prjconf/pkg/conditions"
	"github.com/arthur-debert/prjconf/pkg/errors"
	"github.com/arthur-debert/prjconf/pkg/project"
	"github.com/arthur-debert/prjconf/pkg/properties"
	"github.com/arthur-debert/prjconf/pkg/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// literal treats "true" and "false" as the only valid conditions.
var literal = conditions.EvaluatorFunc(func(condition string, _ properties.Snapshot) (bool, error) {
	switch condition {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, stderrors.New("unsupported condition")
})

func newStore(t *testing.T, groups ...*sources.Group) *properties.Store {
	t.Helper()
	s := properties.New()
	require.NoError(t, s.Set("SOURCES", "main.cpp"))
	for _, g := range groups {
		require.NoError(t, sources.Register(s, g))
	}
	return s
}

func TestTrueConditionUnitesOnce(t *testing.T) {
	store := newStore(t, sources.NewGroup("widgets", "true").Add("SOURCES", "main.cpp", "w.cpp"))

	result, err := sources.Resolve(store, literal)
	require.NoError(t, err)
	assert.Equal(t, []string{"widgets"}, result.Included)
	assert.Equal(t, []string{"main.cpp", "w.cpp"}, store.Values("SOURCES"))

	_, err = sources.Resolve(store, literal)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.cpp", "w.cpp"}, store.Values("SOURCES"))
}

func TestFalseConditionContributesNothing(t *testing.T) {
	store := newStore(t, sources.NewGroup("net", "false").Add("SOURCES", "net.cpp").Add("HEADERS", "net.h"))

	result, err := sources.Resolve(store, literal)
	require.NoError(t, err)
	assert.Equal(t, []string{"net"}, result.Excluded)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, []string{"main.cpp"}, store.Values("SOURCES"))
	assert.False(t, store.IsSet("HEADERS"))
}

func TestMissingConditionWarnsAndSkips(t *testing.T) {
	evaluated := false
	eval := conditions.EvaluatorFunc(func(string, properties.Snapshot) (bool, error) {
		evaluated = true
		return true, nil
	})
	store := newStore(t, sources.NewGroup("orphan", "").Add("SOURCES", "orphan.cpp"))

	result, err := sources.Resolve(store, eval)
	require.NoError(t, err)

	assert.False(t, evaluated, "a group without condition is never evaluated")
	assert.Equal(t, []string{"orphan"}, result.Skipped)
	require.Len(t, result.Warnings, 1)
	assert.True(t, errors.IsErrorCode(result.Warnings[0], errors.ErrMissingCondition))
	assert.Equal(t, "orphan", errors.GetErrorDetails(result.Warnings[0])["group"])
	assert.Equal(t, []string{"main.cpp"}, store.Values("SOURCES"))
}

func TestEvaluationErrorIsFatal(t *testing.T) {
	store := newStore(t,
		sources.NewGroup("broken", "maybe").Add("SOURCES", "b.cpp"),
		sources.NewGroup("later", "true").Add("SOURCES", "l.cpp"),
	)

	_, err := sources.Resolve(store, literal)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConditionEval))
	assert.Equal(t, "broken", errors.GetErrorDetails(err)["group"])
	assert.Equal(t, []string{"main.cpp"}, store.Values("SOURCES"))
}

func TestCategoriesUnitedFirst(t *testing.T) {
	g := sources.NewGroup("gui", "true").
		Add("DISTFILES", "README").
		Add("RESOURCES", "gui.qrc").
		Add("SOURCES", "gui.cpp").
		Add("HEADERS", "gui.h").
		Add("TRANSLATIONS", "gui_de.ts")

	var names []string
	for _, l := range g.Ordered() {
		names = append(names, l.Variable)
	}
	assert.Equal(t, []string{"HEADERS", "SOURCES", "RESOURCES", "DISTFILES", "TRANSLATIONS"}, names)

	store := newStore(t, g)
	_, err := sources.Resolve(store, literal)
	require.NoError(t, err)
	assert.Equal(t, []string{"gui_de.ts"}, store.Values("TRANSLATIONS"))
	assert.Equal(t, []string{"gui.qrc"}, store.Values("RESOURCES"))
}

func TestLaterConditionsSeeEarlierGroups(t *testing.T) {
	store := newStore(t,
		sources.NewGroup("base", "true").Add("CONFIG", "widgets"),
		sources.NewGroup("widgets", `contains(CONFIG, "widgets")`).Add("SOURCES", "w.cpp"),
	)

	result, err := sources.Resolve(store, conditions.NewHCL())
	require.NoError(t, err)
	assert.Equal(t, []string{"base", "widgets"}, result.Included)
	assert.Equal(t, []string{"main.cpp", "w.cpp"}, store.Values("SOURCES"))
}

func TestDiscoverRoundTrip(t *testing.T) {
	store := newStore(t,
		sources.NewGroup("a", "true").Add("SOURCES", "a.cpp").Add("EXTRA", "x"),
		sources.NewGroup("b", "").Add("HEADERS", "b.h"),
	)
	require.NoError(t, store.Set("TARGET", "phone"))
	require.NoError(t, store.Set("other.TYPE", "SOMETHING_ELSE"))

	groups := sources.Discover(store)
	require.Len(t, groups, 2)
	assert.Equal(t, "a", groups[0].Name)
	assert.Equal(t, "true", groups[0].Condition)
	assert.Equal(t, []string{"a.cpp"}, groups[0].Files("SOURCES"))
	assert.Equal(t, []string{"x"}, groups[0].Files("EXTRA"))
	assert.Equal(t, "", groups[1].Condition)
}

func TestRegisterRejectsBadNames(t *testing.T) {
	store := properties.New()
	assert.True(t, errors.IsErrorCode(sources.Register(store, sources.NewGroup("", "true")), errors.ErrInvalidInput))
	assert.True(t, errors.IsErrorCode(sources.Register(store, sources.NewGroup("a.b", "true")), errors.ErrInvalidInput))
}

func TestExtensionRunsBeforeConsumers(t *testing.T) {
	p := project.New("phone")
	require.NoError(t, p.Properties().Set("SOURCES", "main.cpp"))
	require.NoError(t, sources.Register(p.Properties(), sources.NewGroup("widgets", "true").Add("SOURCES", "w.cpp")))
	require.NoError(t, sources.Register(p.Properties(), sources.NewGroup("orphan", "").Add("SOURCES", "o.cpp")))

	var seen []string
	require.NoError(t, p.Register(project.Extension{
		Name: "template",
		Finalize: func(ctx *project.Context) error {
			seen = ctx.Properties().Values("SOURCES")
			return nil
		},
	}))
	require.NoError(t, p.Register(sources.Extension(literal)))

	report, err := p.Configure()
	require.NoError(t, err)

	assert.Equal(t, []string{sources.ExtensionName, "template"}, report.Order)
	assert.Equal(t, []string{"main.cpp", "w.cpp"}, seen)
	require.Len(t, report.Warnings, 1)
	assert.True(t, errors.IsErrorCode(report.Warnings[0], errors.ErrMissingCondition))
}
