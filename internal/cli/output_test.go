package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitError_Error(t *testing.T) {
	e := NewExitError(ExitFailure, "plain message")
	assert.Equal(t, "plain message", e.Error())

	wrapped := WrapExitError(ExitCommandError, "context", errors.New("cause"))
	assert.Equal(t, "context: cause", wrapped.Error())
	assert.Equal(t, "cause", wrapped.Unwrap().Error())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "boom")))

	// Exit codes survive wrapping.
	inner := NewExitError(ExitCommandError, "inner")
	assert.Equal(t, ExitCommandError, GetExitCode(fmt.Errorf("outer: %w", inner)))
}
