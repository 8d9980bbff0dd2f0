package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestProject is a temporary project directory.
type TestProject struct {
	Dir string
}

// SetupTestProject creates an empty project directory named name.
func SetupTestProject(t *testing.T, name string) *TestProject {
	t.Helper()

	dir := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	return &TestProject{Dir: dir}
}

// ProjectDir creates a project directory holding a prjconf.toml with content.
func ProjectDir(t *testing.T, content string) string {
	t.Helper()

	tp := SetupTestProject(t, "project")
	tp.AddFile(t, "prjconf.toml", content)
	return tp.Dir
}

// AddFile writes a file into the project, creating parent directories.
func (tp *TestProject) AddFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(tp.Dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
