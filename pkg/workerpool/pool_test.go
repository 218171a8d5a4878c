package workerpool_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/orderdesk/pkg/workerpool"
)

func TestPool_SubmitAndExecute(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Shutdown()

	const n = 100
	var count atomic.Int64
	var wg sync.WaitGroup
	wg.Add(n)

	for i := 0; i < n; i++ {
		require.NoError(t, pool.SubmitWait(func() {
			defer wg.Done()
			count.Add(1)
		}))
	}

	wg.Wait()
	assert.Equal(t, int64(n), count.Load())
}

func TestPool_ErrPoolFull(t *testing.T) {
	pool := workerpool.New(1)
	defer pool.Shutdown()

	blocker := make(chan struct{})
	started := make(chan struct{})

	require.NoError(t, pool.SubmitWait(func() {
		close(started)
		<-blocker
	}))
	<-started

	// queue holds 2 for a single worker
	require.NoError(t, pool.Submit(func() {}))
	require.NoError(t, pool.Submit(func() {}))

	assert.ErrorIs(t, pool.Submit(func() {}), workerpool.ErrPoolFull)
	close(blocker)
}

func TestPool_ErrPoolClosed(t *testing.T) {
	pool := workerpool.New(2)
	pool.Shutdown()
	pool.Shutdown()

	assert.ErrorIs(t, pool.Submit(func() {}), workerpool.ErrPoolClosed)
	assert.ErrorIs(t, pool.SubmitWait(func() {}), workerpool.ErrPoolClosed)
}

func TestPool_PanicRecovery(t *testing.T) {
	pool := workerpool.New(1)
	defer pool.Shutdown()

	require.NoError(t, pool.SubmitWait(func() { panic("boom") }))

	done := make(chan struct{})
	require.NoError(t, pool.SubmitWait(func() { close(done) }))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive a panicking task")
	}
}

func TestPool_ShutdownDrainsQueue(t *testing.T) {
	pool := workerpool.New(2)

	var count atomic.Int64
	for i := 0; i < 4; i++ {
		require.NoError(t, pool.SubmitWait(func() {
			time.Sleep(time.Millisecond)
			count.Add(1)
		}))
	}

	pool.Shutdown()
	assert.Equal(t, int64(4), count.Load())
}
