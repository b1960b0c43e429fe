package cron

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/guildkit/backend/pkg/testutil"

	"github.com/stretchr/testify/require"
)

type countingJob struct {
	runs     int32
	interval time.Duration
}

func (j *countingJob) Do(ctx context.Context) {
	atomic.AddInt32(&j.runs, 1)
}

func (j *countingJob) RunNow() bool {
	return true
}

func (j *countingJob) Next() time.Time {
	return time.Now().Add(j.interval)
}

func TestCronJobManager(t *testing.T) {
	ctx := testutil.MockContext()

	job := &countingJob{interval: 100 * time.Millisecond}
	manager := NewCronJobManager()
	manager.Register(job)

	done := make(chan struct{})
	go func() {
		manager.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&job.runs) >= 2
	}, 2*time.Second, 5*time.Millisecond)

	manager.Cancel(ctx)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("manager did not stop after cancel")
	}
}
