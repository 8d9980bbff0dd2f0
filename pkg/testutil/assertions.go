package testutil

import (
	"testing"

	"github.com/arthur-debert/prjconf/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertErrorCode fails the test unless err carries code somewhere in its
// chain.
func AssertErrorCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, code), "expected %s in %v", code, err)
}

// AssertErrorDetail checks one detail of the first error in the chain that
// carries code.
func AssertErrorDetail(t *testing.T, err error, code errors.ErrorCode, key string, want interface{}) {
	t.Helper()

	pe := errors.FindError(err, code)
	require.NotNil(t, pe, "expected %s in %v", code, err)
	assert.Equal(t, want, pe.Details[key], "detail %q", key)
}
