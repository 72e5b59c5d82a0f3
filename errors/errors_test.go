package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorClassString(t *testing.T) {
	assert.Equal(t, "transient", ErrorTransient.String())
	assert.Equal(t, "invalid", ErrorInvalid.String())
	assert.Equal(t, "fatal", ErrorFatal.String())
	assert.Equal(t, "unknown", ErrorClass(99).String())
}

func TestWrapFormat(t *testing.T) {
	base := stderrors.New("boom")
	err := Wrap(base, "Manager", "LoadGraph", "evaluation")
	require.Error(t, err)
	assert.Equal(t, "Manager.LoadGraph: evaluation failed: boom", err.Error())
	assert.True(t, stderrors.Is(err, base))

	assert.NoError(t, Wrap(nil, "Manager", "LoadGraph", "evaluation"))
}

func TestWrapClassified(t *testing.T) {
	base := stderrors.New("boom")

	assert.True(t, IsTransient(WrapTransient(base, "c", "m", "a")))
	assert.True(t, IsInvalid(WrapInvalid(base, "c", "m", "a")))
	assert.True(t, IsFatal(WrapFatal(base, "c", "m", "a")))

	// Classification is exclusive.
	err := WrapInvalid(base, "c", "m", "a")
	assert.False(t, IsTransient(err))
	assert.False(t, IsFatal(err))

	// The base error stays reachable through the wrapper.
	assert.True(t, stderrors.Is(err, base))
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.NoError(t, WrapTransient(nil, "c", "m", "a"))
	assert.NoError(t, WrapInvalid(nil, "c", "m", "a"))
	assert.NoError(t, WrapFatal(nil, "c", "m", "a"))
}

func TestSentinelClassification(t *testing.T) {
	assert.True(t, IsInvalid(ErrInvalidQuery))
	assert.True(t, IsInvalid(ErrWrongForm))
	assert.True(t, IsInvalid(ErrQueryParse))
	assert.True(t, IsInvalid(ErrNotAQuery))

	assert.True(t, IsTransient(ErrQueryEvaluation))
	assert.True(t, IsTransient(ErrEndpointUnreachable))
	assert.True(t, IsTransient(ErrEndpointStatus))
	assert.True(t, IsTransient(context.DeadlineExceeded))

	assert.True(t, IsFatal(ErrInvalidConfig))
	assert.True(t, IsFatal(ErrMissingConfig))
}

func TestSentinelClassificationThroughWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", ErrQueryParse)
	assert.True(t, IsInvalid(err))

	err = fmt.Errorf("outer: %w", ErrEndpointStatus)
	assert.True(t, IsTransient(err))
}

func TestTransientPatternMatching(t *testing.T) {
	assert.True(t, IsTransient(stderrors.New("connection refused")))
	assert.True(t, IsTransient(stderrors.New("request timeout")))
	assert.False(t, IsTransient(stderrors.New("no such thing")))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, ErrorInvalid, Classify(ErrInvalidQuery))
	assert.Equal(t, ErrorFatal, Classify(ErrMissingConfig))
	assert.Equal(t, ErrorTransient, Classify(stderrors.New("anything else")))
}

func TestNilChecks(t *testing.T) {
	assert.False(t, IsTransient(nil))
	assert.False(t, IsInvalid(nil))
	assert.False(t, IsFatal(nil))
}
