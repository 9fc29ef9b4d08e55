package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPipeRoundTrips(t *testing.T) {
	host, worker := NewMemoryPipe(4)

	require.NoError(t, host.Send([]byte("ping")))
	got, err := worker.Recv()
	require.NoError(t, err)
	assert.Equal(t, "ping", string(got))

	require.NoError(t, worker.Send([]byte("pong")))
	got, err = host.Recv()
	require.NoError(t, err)
	assert.Equal(t, "pong", string(got))
}

func TestMemoryPipeSendAfterCloseIsDisconnected(t *testing.T) {
	host, worker := NewMemoryPipe(1)
	host.Close()

	assert.ErrorIs(t, host.Send([]byte("x")), ErrDisconnected)
	_, err := worker.Recv()
	assert.ErrorIs(t, err, ErrDisconnected)
}

func TestMemoryPipeRecvBlocksUntilClosed(t *testing.T) {
	host, _ := NewMemoryPipe(1)

	done := make(chan error, 1)
	go func() {
		_, err := host.Recv()
		done <- err
	}()

	select {
	case <-done:
		t.Fatal("Recv returned before Close was called")
	case <-time.After(20 * time.Millisecond):
	}

	host.Close()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrDisconnected)
	case <-time.After(time.Second):
		t.Fatal("Recv did not unblock after Close")
	}
}

func TestMemoryPipeIsClosed(t *testing.T) {
	host, worker := NewMemoryPipe(1)
	assert.False(t, host.IsClosed())
	assert.False(t, worker.IsClosed())

	worker.Close()
	assert.True(t, worker.IsClosed())
	assert.True(t, host.IsClosed())
}
