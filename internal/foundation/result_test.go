package foundation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type codeError struct{ code int }

func (e *codeError) Error() string { return "code error" }

func TestResult_Ok(t *testing.T) {
	r := Ok[string, *codeError]("/work")

	require.True(t, r.IsOk())
	require.False(t, r.IsErr())
	require.Equal(t, "/work", r.Unwrap())

	v, err := r.Tuple()
	require.NoError(t, err)
	require.Equal(t, "/work", v)
	require.Panics(t, func() { r.UnwrapErr() })
}

func TestResult_Err(t *testing.T) {
	r := Err[string](&codeError{code: 11})

	require.True(t, r.IsErr())
	e, ok := r.Failure()
	require.True(t, ok)
	require.Equal(t, 11, e.code)

	v, err := r.Tuple()
	require.Error(t, err)
	require.Empty(t, v)
	var ce *codeError
	require.True(t, errors.As(err, &ce))
	require.Panics(t, func() { r.Unwrap() })
}

func TestResult_MatchAndMap(t *testing.T) {
	var seen string
	Ok[string, *codeError]("a").Match(func(s string) { seen = s }, func(*codeError) { seen = "err" })
	require.Equal(t, "a", seen)

	Err[string](&codeError{}).Match(func(s string) { seen = s }, func(*codeError) { seen = "err" })
	require.Equal(t, "err", seen)

	n := Map(Ok[string, *codeError]("abc"), func(s string) int { return len(s) })
	require.Equal(t, 3, n.Unwrap())

	failed := Map(Err[string](&codeError{code: 2}), func(s string) int { return len(s) })
	require.True(t, failed.IsErr())
}
