package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/prjconf/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectDir(t *testing.T) {
	dir := ProjectDir(t, "name = \"x\"\n")

	data, err := os.ReadFile(filepath.Join(dir, "prjconf.toml"))
	require.NoError(t, err)
	assert.Equal(t, "name = \"x\"\n", string(data))
}

func TestAddFileCreatesParents(t *testing.T) {
	tp := SetupTestProject(t, "widgets")
	path := tp.AddFile(t, "src/ui/main.cpp", "int main() {}")

	assert.Equal(t, filepath.Join(tp.Dir, "src", "ui", "main.cpp"), path)
	assert.FileExists(t, path)
	assert.Equal(t, "widgets", filepath.Base(tp.Dir))
}

func TestErrorAssertions(t *testing.T) {
	inner := errors.New(errors.ErrCyclicDependency, "loop").WithDetail("cycle", []string{"a", "b", "a"})
	err := errors.Wrap(inner, errors.ErrHookFailed, "finalize failed")

	AssertErrorCode(t, err, errors.ErrHookFailed)
	AssertErrorCode(t, err, errors.ErrCyclicDependency)
	AssertErrorDetail(t, err, errors.ErrCyclicDependency, "cycle", []string{"a", "b", "a"})
}
