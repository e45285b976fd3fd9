package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/scienceol/chemcheck/pkg/common/code"
	"github.com/scienceol/chemcheck/pkg/core/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBroadcast(t *testing.T) {
	l := NewLocal()
	var got []string
	require.NoError(t, l.Registry(context.Background(), notify.CompoundResolve, func(_ context.Context, msg string) error {
		got = append(got, msg)
		return nil
	}))

	require.NoError(t, l.Broadcast(context.Background(), &notify.SendMsg{
		Channel: notify.CompoundResolve,
		Data:    map[string]any{"name": "water"},
	}))
	require.Len(t, got, 1)

	msg := &notify.SendMsg{}
	require.NoError(t, json.Unmarshal([]byte(got[0]), msg))
	assert.Equal(t, notify.CompoundResolve, msg.Channel)
	assert.False(t, msg.UUID.IsNil())
	assert.NotZero(t, msg.Timestamp)
	assert.Equal(t, map[string]any{"name": "water"}, msg.Data)
}

func TestLocalRegistryTwice(t *testing.T) {
	l := NewLocal()
	noop := func(context.Context, string) error { return nil }
	require.NoError(t, l.Registry(context.Background(), notify.CompoundResolve, noop))
	err := l.Registry(context.Background(), notify.CompoundResolve, noop)
	assert.ErrorIs(t, err, code.NotifyActionAlreadyRegistryErr)
}

func TestLocalBroadcastWithoutHandler(t *testing.T) {
	assert.NoError(t, NewLocal().Broadcast(context.Background(), &notify.SendMsg{Channel: notify.CompoundResolve}))
}

func TestLocalHandlerFailureIsContained(t *testing.T) {
	l := NewLocal()
	require.NoError(t, l.Registry(context.Background(), notify.CompoundResolve, func(context.Context, string) error {
		return errors.New("handler failed")
	}))
	assert.NoError(t, l.Broadcast(context.Background(), &notify.SendMsg{Channel: notify.CompoundResolve}))

	l2 := NewLocal()
	require.NoError(t, l2.Registry(context.Background(), notify.CompoundResolve, func(context.Context, string) error {
		panic("handler panic")
	}))
	assert.NoError(t, l2.Broadcast(context.Background(), &notify.SendMsg{Channel: notify.CompoundResolve}))
}

func TestLocalDropsCancelledHandler(t *testing.T) {
	l := NewLocal()
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	require.NoError(t, l.Registry(ctx, notify.CompoundResolve, func(context.Context, string) error {
		calls++
		return nil
	}))
	cancel()

	require.NoError(t, l.Broadcast(context.Background(), &notify.SendMsg{Channel: notify.CompoundResolve}))
	assert.Equal(t, 0, calls)

	require.NoError(t, l.Registry(context.Background(), notify.CompoundResolve, func(context.Context, string) error {
		calls++
		return nil
	}))
	require.NoError(t, l.Broadcast(context.Background(), &notify.SendMsg{Channel: notify.CompoundResolve}))
	assert.Equal(t, 1, calls)
}

func TestLocalClose(t *testing.T) {
	l := NewLocal()
	noop := func(context.Context, string) error { return nil }
	require.NoError(t, l.Registry(context.Background(), notify.CompoundResolve, noop))
	require.NoError(t, l.Close(context.Background()))
	assert.NoError(t, l.Registry(context.Background(), notify.CompoundResolve, noop))
}

func TestNewEventsFallsBackToLocal(t *testing.T) {
	_, ok := NewEvents().(*Local)
	assert.True(t, ok)
}
