package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/undercity-game/undercity/internal/testing/leaktest"
)

func TestPoolProcessesJobs(t *testing.T) {
	pool := NewPool(2, 10)
	pool.Start()
	defer pool.Stop()

	var processed atomic.Int32
	done := make(chan struct{}, 4)
	for i := 0; i < 4; i++ {
		pool.Enqueue(JobFunc(func(context.Context) error {
			processed.Add(1)
			done <- struct{}{}
			return nil
		}))
	}

	for i := 0; i < 4; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for jobs")
		}
	}
	assert.Equal(t, int32(4), processed.Load())
}

func TestPoolSurvivesFailingJob(t *testing.T) {
	pool := NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	done := make(chan struct{}, 1)
	pool.Enqueue(JobFunc(func(context.Context) error {
		return errors.New("boom")
	}))
	pool.Enqueue(JobFunc(func(context.Context) error {
		done <- struct{}{}
		return nil
	}))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker died after failing job")
	}
}

func TestPoolStopLeavesNoGoroutines(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		pool := NewPool(4, 10)
		pool.Start()

		for i := 0; i < 8; i++ {
			pool.Enqueue(JobFunc(func(context.Context) error { return nil }))
		}

		pool.Stop()
	})
}

func TestTryEnqueueFullQueue(t *testing.T) {
	pool := NewPool(1, 1)
	// Pool not started: nothing drains the queue.

	assert.True(t, pool.TryEnqueue(JobFunc(func(context.Context) error { return nil })))
	assert.False(t, pool.TryEnqueue(JobFunc(func(context.Context) error { return nil })))
}
