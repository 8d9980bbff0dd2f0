package core_test

import (
	"testing"

	"github.com/arthur-debert/prjconf/pkg/conditions"
	"github.com/arthur-debert/prjconf/pkg/config"
	"github.com/arthur-debert/prjconf/pkg/core"
	"github.com/arthur-debert/prjconf/pkg/errors"
	"github.com/arthur-debert/prjconf/pkg/project"
	"github.com/arthur-debert/prjconf/pkg/properties"
	"github.com/arthur-debert/prjconf/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const phoneProject = `
name = "phone"

[properties]
CONFIG = ["debug", "widgets"]
SOURCES = ["main.cpp"]

[[conditional_sources]]
name = "widgets"
condition = 'contains(CONFIG, "widgets")'
sources = ["w.cpp"]

[[conditional_sources]]
name = "bluetooth"
condition = 'contains(CONFIG, "bluetooth")'
sources = ["bt.cpp"]

[[conditional_sources]]
name = "orphan"
sources = ["orphan.cpp"]

[[rules]]
name = "flash"
depends = ["phone"]
commands = ["fastboot flash system phone"]

[[extensions]]
name = "rootfs"
run_after = ["template"]

[[extensions.rules]]
name = "image"
depends = ["phone"]
commands = ["mkdir -p rootfs", "cp phone rootfs/"]
`

func findRule(t *testing.T, result *core.Result, name string) []string {
	t.Helper()
	for _, r := range result.Rules {
		if r.Name == name {
			return r.Commands
		}
	}
	t.Fatalf("rule %q not found", name)
	return nil
}

func property(result *core.Result, name string) []string {
	for _, p := range result.Properties {
		if p.Name == name {
			return p.Values
		}
	}
	return nil
}

func TestConfigureProject(t *testing.T) {
	result, err := core.Configure(core.Options{Path: testutil.ProjectDir(t, phoneProject)})
	require.NoError(t, err)

	assert.Equal(t, "phone", result.Project)
	assert.Equal(t, "app", result.Template)
	assert.Equal(t, []string{"conditional_sources", "template", "rootfs", "rules"}, result.Order)

	assert.Equal(t, []string{"main.cpp", "w.cpp"}, property(result, "SOURCES"))
	assert.Equal(t, []string{"phone"}, property(result, "TARGET"))

	assert.Equal(t, []string{"$(QMAKE_CXX) -o phone main.cpp w.cpp"}, findRule(t, result, "phone"))
	assert.Equal(t, []string{"mkdir -p rootfs", "cp phone rootfs/"}, findRule(t, result, "image"))
	assert.Equal(t, []string{"fastboot flash system phone"}, findRule(t, result, "flash"))

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "orphan")
}

func TestConfigureStrict(t *testing.T) {
	dir := testutil.ProjectDir(t, `
[[rules]]
name = "flash"
depends = ["image"]
`)

	_, err := core.Configure(core.Options{Path: dir})
	require.NoError(t, err)

	_, err = core.Configure(core.Options{Path: dir, Strict: true})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestConfigureUnknownTemplate(t *testing.T) {
	t.Setenv("PRJCONF_TEMPLATE", "plugin")

	_, err := core.Configure(core.Options{Path: testutil.ProjectDir(t, phoneProject)})
	testutil.AssertErrorCode(t, err, errors.ErrUnknownTemplate)
	testutil.AssertErrorDetail(t, err, errors.ErrUnknownTemplate, "available", []string{"app", "aux", "lib", "subdirs"})
}

func TestConfigureCycle(t *testing.T) {
	dir := testutil.ProjectDir(t, `
[[extensions]]
name = "a"
run_before = ["b"]

[[extensions]]
name = "b"
run_before = ["a"]
`)

	_, err := core.Configure(core.Options{Path: dir})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCyclicDependency))
	assert.Equal(t, []string{"a", "b", "a"}, errors.GetErrorDetails(err)["cycle"])
}

func TestDisableBuiltins(t *testing.T) {
	cfg, err := config.Load(testutil.ProjectDir(t, "disable = [\"template\", \"conditional_sources\"]\n"+phoneProject))
	require.NoError(t, err)

	result, err := core.Configure(core.Options{Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, []string{"rootfs", "rules"}, result.Order)
	assert.Equal(t, []string{"main.cpp"}, property(result, "SOURCES"))
}

func TestDuplicateExtensionName(t *testing.T) {
	dir := testutil.ProjectDir(t, `
[[extensions]]
name = "template"
`)

	_, err := core.Configure(core.Options{Path: dir})
	testutil.AssertErrorCode(t, err, errors.ErrAlreadyExists)
	assert.Equal(t, "template", errors.GetErrorDetails(err)["extension"])
}

func TestInjectedEvaluatorAndExtensions(t *testing.T) {
	always := conditions.EvaluatorFunc(func(string, properties.Snapshot) (bool, error) { return true, nil })
	var sawSources []string

	result, err := core.Configure(core.Options{
		Path:      testutil.ProjectDir(t, phoneProject),
		Evaluator: always,
		Extensions: []project.Extension{{
			Name:     "probe",
			RunAfter: []string{"conditional_sources"},
			Finalize: func(ctx *project.Context) error {
				sawSources = ctx.Properties().Values("SOURCES")
				return nil
			},
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"main.cpp", "w.cpp", "bt.cpp"}, sawSources)
	assert.Contains(t, result.Order, "probe")
}

func TestSchedule(t *testing.T) {
	order, err := core.Schedule(core.Options{Path: testutil.ProjectDir(t, phoneProject)})
	require.NoError(t, err)
	assert.Equal(t, []string{"conditional_sources", "template", "rootfs", "rules"}, order)
}
