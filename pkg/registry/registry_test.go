package registry_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/arthur-debert/prjconf/pkg/errors"
	"github.com/arthur-debert/prjconf/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hook struct {
	runBefore []string
}

func TestRegisterKeepsArrivalOrder(t *testing.T) {
	reg := registry.New[*hook]("extension")

	for _, name := range []string{"template", "conditional_sources", "rules"} {
		require.NoError(t, reg.Register(name, &hook{}))
	}

	assert.Equal(t, []string{"template", "conditional_sources", "rules"}, reg.List())
	assert.Equal(t, []string{"conditional_sources", "rules", "template"}, reg.Sorted())
	assert.Equal(t, 0, reg.Index("template"))
	assert.Equal(t, 2, reg.Index("rules"))
	assert.Equal(t, -1, reg.Index("moc"))
	assert.Equal(t, 3, reg.Count())
}

func TestRegisterErrors(t *testing.T) {
	reg := registry.New[int]("template")
	require.NoError(t, reg.Register("app", 1))

	tests := []struct {
		name     string
		key      string
		wantCode errors.ErrorCode
		wantMsg  string
	}{
		{"duplicate", "app", errors.ErrAlreadyExists, `template "app" is already registered`},
		{"empty", "", errors.ErrInvalidInput, "template name cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reg.Register(tt.key, 2)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.GetErrorCode(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Equal(t, "template", errors.GetErrorDetails(err)["kind"])
		})
	}

	got, err := reg.Get("app")
	require.NoError(t, err)
	assert.Equal(t, 1, got, "a rejected duplicate must not replace the original")
	assert.Equal(t, 1, reg.Count())
}

func TestGet(t *testing.T) {
	reg := registry.New[*hook]("extension")
	h := &hook{runBefore: []string{"rules"}}
	require.NoError(t, reg.Register("moc", h))

	got, err := reg.Get("moc")
	require.NoError(t, err)
	assert.Same(t, h, got)
	assert.True(t, reg.Has("moc"))

	got, err = reg.Get("uic")
	assert.Nil(t, got)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	assert.Equal(t, "uic", errors.GetErrorDetails(err)["name"])
	assert.False(t, reg.Has("uic"))
}

func TestListReturnsCopy(t *testing.T) {
	reg := registry.New[int]("extension")
	require.NoError(t, reg.Register("a", 1))
	require.NoError(t, reg.Register("b", 2))

	names := reg.List()
	names[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, reg.List())
}

func TestMustHelpers(t *testing.T) {
	reg := registry.New[string]("template")

	assert.NotPanics(t, func() { registry.MustRegister(reg, "lib", "static library") })
	assert.Equal(t, "static library", registry.MustGet(reg, "lib"))

	assert.PanicsWithValue(t,
		`failed to register lib: [ALREADY_EXISTS] template "lib" is already registered`,
		func() { registry.MustRegister(reg, "lib", "again") })
	assert.Panics(t, func() { registry.MustGet(reg, "subdirs") })
}

func TestConcurrentRegistration(t *testing.T) {
	reg := registry.New[int]("extension")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = reg.Register(fmt.Sprintf("ext-%02d", i), i)
			_ = reg.List()
			_ = reg.Has("ext-00")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, reg.Count())
	assert.Len(t, reg.Sorted(), 50)
	for i, name := range reg.List() {
		assert.Equal(t, i, reg.Index(name))
	}
}

func ExampleRegistry() {
	reg := registry.New[string]("extension")
	_ = reg.Register("template", "apply the project template")
	_ = reg.Register("conditional_sources", "resolve conditional groups")

	fmt.Println(reg.List())
	fmt.Println(reg.Sorted())
	// Output:
	// [template conditional_sources]
	// [conditional_sources template]
}
