package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafelyRunRecoversPanic(t *testing.T) {
	err := SafelyRun(func() { panic("boom") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic: boom")

	sentinel := errors.New("typed")
	err = SafelyRun(func() { panic(sentinel) })
	assert.ErrorIs(t, err, sentinel)

	assert.NoError(t, SafelyRun(func() {}))
}

func TestSafelyGoReportsError(t *testing.T) {
	done := make(chan error, 1)
	SafelyGo(func() { panic("async") }, func(err error) { done <- err })
	err := <-done
	assert.Contains(t, err.Error(), "async")
}
