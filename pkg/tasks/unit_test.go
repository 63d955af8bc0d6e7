package tasks

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func always(v bool) Predicate {
	return func(*Context) (bool, error) { return v, nil }
}

func TestGeneralUnitUnconfigured(t *testing.T) {
	tests := []struct {
		name string
		unit *GeneralUnit
	}{
		{"nothing set", NewUnit("empty", nil, nil)},
		{"no predicate", NewUnit("no-predicate", nil, func(*Context) error { return nil })},
		{"no action", NewUnit("no-action", always(true), nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, reporter, _ := newTestContext(t)
			_, err := Execute(ctx, tt.unit)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrTaskUnconfigured))
			assert.True(t, IsFatal(err))
			assert.Empty(t, reporter.lines)
		})
	}
}

func TestExecutePerforms(t *testing.T) {
	ctx, reporter, _ := newTestContext(t)
	calls := 0
	u := NewUnit("fisher", always(true), func(*Context) error {
		calls++
		return nil
	})

	outcome, err := Execute(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, StatusPerformed, outcome.Status)
	assert.Equal(t, "general", outcome.Kind)
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"perform fisher"}, reporter.lines)
}

func TestExecuteSkipReportedOnlyWhenVerbose(t *testing.T) {
	action := func(*Context) error {
		t.Fatal("action must not run for an up-to-date unit")
		return nil
	}

	ctx, reporter, _ := newTestContext(t)
	outcome, err := Execute(ctx, NewUnit("quiet", always(false), action))
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, outcome.Status)
	assert.Empty(t, reporter.lines)

	ctx.Verbose = true
	_, err = Execute(ctx, NewUnit("loud", always(false), action))
	require.NoError(t, err)
	assert.Equal(t, []string{"skip loud"}, reporter.lines)
}

func TestExecuteDryRun(t *testing.T) {
	ctx, reporter, _ := newTestContext(t)
	ctx.DryRun = true

	outcome, err := Execute(ctx, NewUnit("zsh", always(true), func(*Context) error {
		t.Fatal("dry run must not perform")
		return nil
	}))
	require.NoError(t, err)
	assert.Equal(t, StatusPending, outcome.Status)
	assert.Equal(t, []string{"would zsh"}, reporter.lines)
}

func TestExecutePredicateError(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	boom := errors.New(errors.ErrSourceMissing, "no gpg.conf")
	_, err := Execute(ctx, NewUnit("gpg", func(*Context) (bool, error) { return false, boom }, func(*Context) error { return nil }))
	assert.Same(t, boom, err)
}

func TestExecuteCommandFailureIsTolerated(t *testing.T) {
	ctx, reporter, _ := newTestContext(t)
	failure := errors.New(errors.ErrCommandFailed, "curl: (6) could not resolve host")

	outcome, err := Execute(ctx, NewUnit("rustup", always(true), func(*Context) error { return failure }))
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, outcome.Status)
	assert.Contains(t, outcome.Error, "could not resolve host")
	assert.Equal(t, []string{"perform rustup", "fail rustup"}, reporter.lines)
}

func TestExecuteIOErrorIsFatal(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	ioErr := errors.Wrap(stderrors.New("permission denied"), errors.ErrFileCopy, "copy")

	_, err := Execute(ctx, NewUnit("ssh", always(true), func(*Context) error { return ioErr }))
	assert.Error(t, err)
}

func TestIsFatal(t *testing.T) {
	assert.False(t, IsFatal(nil))
	assert.True(t, IsFatal(stderrors.New("plain")))
	assert.True(t, IsFatal(errors.New(errors.ErrConfigInvalid, "bad")))
	assert.False(t, IsFatal(errors.New(errors.ErrCommandFailed, "exit 1")))
	assert.False(t, IsFatal(errors.Wrap(errors.New(errors.ErrCommandFailed, "exit 1"), errors.ErrInternal, "outer")))
}
