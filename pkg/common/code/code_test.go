package code

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithMsg(t *testing.T) {
	err := ParamErr.WithMsg("name is required")
	assert.Equal(t, "name is required", err.Error())
	assert.Equal(t, ParamErr, Of(err))
	assert.True(t, errors.Is(err, ParamErr))
	assert.False(t, errors.Is(err, RPCHttpErr))
}

func TestWithErrKeepsMessage(t *testing.T) {
	inner := errors.New("dial tcp: connection refused")
	err := RPCHttpErr.WithErr(inner)
	assert.Equal(t, "dial tcp: connection refused", err.Error())
	assert.ErrorIs(t, err, inner)
}

func TestOf(t *testing.T) {
	assert.Equal(t, Success, Of(nil))
	assert.Equal(t, InternalErr, Of(InternalErr))
	assert.Equal(t, RPCHttpCodeErr, Of(fmt.Errorf("wrap: %w", RPCHttpCodeErr.WithMsgf("status %d", 500))))
	assert.Equal(t, UnDefineErr, Of(errors.New("plain")))
}

func TestString(t *testing.T) {
	assert.Equal(t, "param err", ParamErr.String())
	assert.Equal(t, "code: 9999", ErrCode(9999).String())
}
