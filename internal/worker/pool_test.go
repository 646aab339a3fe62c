package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testResult struct {
	value int
	err   error
}

func (r testResult) GetError() error { return r.err }

func TestPool_RunPreservesOrder(t *testing.T) {
	jobs := make([]Job, 20)
	for i := range jobs {
		i := i
		jobs[i] = JobFunc(func(context.Context) Result {
			time.Sleep(time.Duration(20-i) * time.Millisecond / 4)
			return testResult{value: i}
		})
	}

	results := NewPool(4).Run(context.Background(), jobs)

	require.Len(t, results, 20)
	for i, r := range results {
		assert.Equal(t, i, r.(testResult).value)
	}
}

func TestPool_BoundsConcurrency(t *testing.T) {
	var active, peak int32
	jobs := make([]Job, 12)
	for i := range jobs {
		jobs[i] = JobFunc(func(context.Context) Result {
			cur := atomic.AddInt32(&active, 1)
			for {
				old := atomic.LoadInt32(&peak)
				if cur <= old || atomic.CompareAndSwapInt32(&peak, old, cur) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&active, -1)
			return testResult{}
		})
	}

	NewPool(3).Run(context.Background(), jobs)

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
}

func TestPool_CancelledContextReachesJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := []Job{JobFunc(func(ctx context.Context) Result {
		return testResult{err: ctx.Err()}
	})}

	results := NewPool(2).Run(ctx, jobs)
	assert.ErrorIs(t, results[0].GetError(), context.Canceled)
}

func TestPool_Empty(t *testing.T) {
	assert.Empty(t, NewPool(2).Run(context.Background(), nil))
}

func TestNewPool_DefaultsToOneWorker(t *testing.T) {
	assert.Equal(t, 1, NewPool(0).Workers())
	assert.Equal(t, 1, NewPool(-3).Workers())
}
