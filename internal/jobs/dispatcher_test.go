package jobs

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	mu   sync.Mutex
	seen []string
	done chan struct{}
}

func newCountingJob(expected int) *countingJob {
	return &countingJob{done: make(chan struct{}, expected)}
}

func (c *countingJob) Run(_ context.Context, jobID string) error {
	c.mu.Lock()
	c.seen = append(c.seen, jobID)
	c.mu.Unlock()
	c.done <- struct{}{}
	return nil
}

func (c *countingJob) waitFor(t *testing.T, n int) {
	t.Helper()
	for range n {
		select {
		case <-c.done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for jobs to run")
		}
	}
}

func TestDispatcherProcessesJobs(t *testing.T) {
	job := newCountingJob(3)
	d := NewDispatcher(job, 2, testLogger())
	defer d.Stop()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, d.Dispatch(context.Background(), id))
	}

	job.waitFor(t, 3)

	job.mu.Lock()
	defer job.mu.Unlock()
	assert.ElementsMatch(t, []string{"a", "b", "c"}, job.seen)
}

func TestDispatcherStopDrainsQueue(t *testing.T) {
	job := newCountingJob(5)
	d := NewDispatcher(job, 1, testLogger())

	for _, id := range []string{"1", "2", "3", "4", "5"} {
		require.NoError(t, d.Dispatch(context.Background(), id))
	}

	d.Stop()

	job.mu.Lock()
	defer job.mu.Unlock()
	assert.Len(t, job.seen, 5)
}

func TestDispatcherDefaultsWorkerCount(t *testing.T) {
	job := newCountingJob(1)
	d := NewDispatcher(job, 0, testLogger())
	defer d.Stop()

	require.NoError(t, d.Dispatch(context.Background(), "only"))
	job.waitFor(t, 1)
}
