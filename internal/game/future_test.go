package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFutureResolveOnce(t *testing.T) {
	f := NewFuture[ModelHandle]()
	assert.False(t, f.Ready())

	assert.True(t, f.Resolve(7))
	assert.False(t, f.Resolve(8))
	assert.False(t, f.Fail(errors.New("late")))
	assert.True(t, f.Ready())

	v, err := f.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ModelHandle(7), v)
}

func TestFutureFail(t *testing.T) {
	f := NewFuture[ModelHandle]()
	boom := errors.New("boom")
	assert.True(t, f.Fail(boom))

	v, err := f.Wait(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, NoModel, v)
}

func TestFutureResolvedFromGoroutine(t *testing.T) {
	f := NewFuture[int]()
	go f.Resolve(42)

	select {
	case <-f.Done():
	case <-time.After(time.Second):
		t.Fatal("future never completed")
	}
	v, err := f.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestFutureWaitCancelled(t *testing.T) {
	f := NewFuture[int]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolved(t *testing.T) {
	f := Resolved("car")
	assert.True(t, f.Ready())
	v, err := f.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "car", v)
}
