package errs

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func TestClassify_NotFoundBecomesMissingReference(t *testing.T) {
	e := Classify(pgx.ErrNoRows)
	require.Equal(t, CategoryMissingReference, e.Category)
	require.False(t, e.Retryable())
}

func TestClassify_TimeoutBecomesTransient(t *testing.T) {
	e := Classify(context.DeadlineExceeded)
	require.Equal(t, CategoryTransient, e.Category)
	require.True(t, e.Retryable())
}

func TestClassify_UnknownErrorBecomesValidation(t *testing.T) {
	e := Classify(errors.New("something weird happened"))
	require.Equal(t, CategoryValidation, e.Category)
	require.False(t, e.Retryable())
}

func TestClassify_NilErrorReturnsNil(t *testing.T) {
	require.Nil(t, Classify(nil))
}

func TestError_UnwrapReturnsUnderlyingError(t *testing.T) {
	underlying := errors.New("boom")
	e := Transport("send_failed", underlying)

	require.ErrorIs(t, e, underlying)
}

func TestTransport_IsRetryable(t *testing.T) {
	e := Transport("send_failed", errors.New("smtp down"))
	require.True(t, e.Retryable())
}

func TestTerminal_IsNotRetryable(t *testing.T) {
	e := Terminal("retry_budget_exhausted", errors.New("gave up"))
	require.False(t, e.Retryable())
}
