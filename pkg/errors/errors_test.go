package errors_test

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/arthur-debert/prjconf/pkg/errors"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "plain",
			err:  errors.New(errors.ErrUnknownTemplate, `unknown template "plugin"`),
			want: `[UNKNOWN_TEMPLATE] unknown template "plugin"`,
		},
		{
			name: "formatted",
			err:  errors.Newf(errors.ErrMissingCondition, "group %q has no condition", "gui"),
			want: `[MISSING_CONDITION] group "gui" has no condition`,
		},
		{
			name: "wrapped",
			err:  errors.Wrap(stderrors.New("disk full"), errors.ErrConfigLoad, "cannot read prjconf.toml"),
			want: "[CONFIG_LOAD] cannot read prjconf.toml: disk full",
		},
		{
			name: "wrapped formatted",
			err:  errors.Wrapf(stderrors.New("boom"), errors.ErrHookFailed, "finalize of %q failed", "moc"),
			want: `[HOOK_FAILED] finalize of "moc" failed: boom`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapNil(t *testing.T) {
	if err := errors.Wrap(nil, errors.ErrInternal, "x"); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
	if err := errors.Wrapf(nil, errors.ErrInternal, "x %d", 1); err != nil {
		t.Errorf("Wrapf(nil) = %v, want nil", err)
	}
}

func TestDetails(t *testing.T) {
	err := errors.New(errors.ErrCyclicDependency, "cycle").
		WithDetail("cycle", []string{"a", "b", "a"}).
		WithDetails(map[string]interface{}{
			"edge":       []string{"b", "a"},
			"unresolved": []string{"a", "b"},
		})

	details := errors.GetErrorDetails(err)
	if len(details) != 3 {
		t.Fatalf("details = %v, want 3 entries", details)
	}
	if !reflect.DeepEqual(details["cycle"], []string{"a", "b", "a"}) {
		t.Errorf("cycle = %v", details["cycle"])
	}

	var zero errors.ProjectError
	zero.WithDetail("k", "v")
	if zero.Details["k"] != "v" {
		t.Error("WithDetail must initialise a nil map")
	}

	if errors.GetErrorDetails(stderrors.New("plain")) != nil {
		t.Error("plain errors have no details")
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := errors.Newf(errors.ErrUnknownTemplate, "unknown template %q", "plugin")

	if !stderrors.Is(err, errors.New(errors.ErrUnknownTemplate, "")) {
		t.Error("errors.Is should match on code")
	}
	if stderrors.Is(err, errors.New(errors.ErrNotFound, "")) {
		t.Error("errors.Is should not match a different code")
	}
	if stderrors.Is(err, stderrors.New("unknown template")) {
		t.Error("errors.Is should not match a plain error")
	}
}

func TestCodeLookupThroughChain(t *testing.T) {
	cycle := errors.New(errors.ErrCyclicDependency, "late cycle").WithDetail("cycle", []string{"x", "y", "x"})
	hook := errors.Wrapf(cycle, errors.ErrHookFailed, "finalize of %q failed", "spawner").
		WithDetail("extension", "spawner")
	outer := fmt.Errorf("configure: %w", hook)

	if got := errors.GetErrorCode(outer); got != errors.ErrHookFailed {
		t.Errorf("GetErrorCode() = %v, want outermost HOOK_FAILED", got)
	}
	for _, code := range []errors.ErrorCode{errors.ErrHookFailed, errors.ErrCyclicDependency} {
		if !errors.IsErrorCode(outer, code) {
			t.Errorf("IsErrorCode(%s) = false", code)
		}
	}
	if errors.IsErrorCode(outer, errors.ErrOrderViolation) {
		t.Error("IsErrorCode(ORDER_VIOLATION) = true")
	}

	found := errors.FindError(outer, errors.ErrCyclicDependency)
	if found == nil || found != cycle {
		t.Fatalf("FindError() = %v, want the inner cycle error", found)
	}
	if errors.FindError(outer, errors.ErrConfigParse) != nil {
		t.Error("FindError should return nil for an absent code")
	}
}

func TestPlainErrors(t *testing.T) {
	plain := stderrors.New("plain")

	if got := errors.GetErrorCode(plain); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode() = %v, want UNKNOWN", got)
	}
	if errors.IsErrorCode(plain, errors.ErrUnknown) {
		t.Error("plain errors carry no code")
	}
	if errors.IsErrorCode(nil, errors.ErrInternal) {
		t.Error("nil carries no code")
	}

	wrapped := errors.Wrap(plain, errors.ErrConfigParse, "bad toml")
	if !stderrors.Is(wrapped, plain) {
		t.Error("Unwrap should expose the wrapped error")
	}
	if errors.IsErrorCode(wrapped, errors.ErrUnknown) {
		t.Error("walking into a plain error must stop")
	}
}
