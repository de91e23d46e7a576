package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type stubResult struct {
	err error
}

func (r *stubResult) GetError() error { return r.err }

// stubJob counts executions and optionally fails or sleeps.
type stubJob struct {
	sleep    time.Duration
	fail     bool
	executed *int32
}

func (j *stubJob) Execute(ctx context.Context) Result {
	if j.executed != nil {
		atomic.AddInt32(j.executed, 1)
	}
	if j.sleep > 0 {
		select {
		case <-time.After(j.sleep):
		case <-ctx.Done():
			return &stubResult{err: ctx.Err()}
		}
	}
	if j.fail {
		return &stubResult{err: errors.New("document failed")}
	}
	return &stubResult{}
}

func TestNewPool_WorkerFloor(t *testing.T) {
	if p := NewPool(4); p.workers != 4 {
		t.Errorf("workers = %d, want 4", p.workers)
	}
	if p := NewPool(0); p.workers != 1 {
		t.Errorf("workers = %d for zero input, want 1", p.workers)
	}
	if p := NewPool(-3); p.workers != 1 {
		t.Errorf("workers = %d for negative input, want 1", p.workers)
	}
}

func TestPool_DrainsAllJobs(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	var executed int32
	const count = 12
	for i := 0; i < count; i++ {
		pool.Submit(&stubJob{executed: &executed})
	}

	results := pool.Wait()
	if len(results) != count {
		t.Errorf("got %d results, want %d", len(results), count)
	}
	if n := atomic.LoadInt32(&executed); n != count {
		t.Errorf("executed %d jobs, want %d", n, count)
	}
}

// trackedJob reports the moments it enters and leaves Execute.
type trackedJob struct {
	enter func()
	leave func()
	sleep time.Duration
}

func (j *trackedJob) Execute(ctx context.Context) Result {
	if j.enter != nil {
		j.enter()
	}
	time.Sleep(j.sleep)
	if j.leave != nil {
		j.leave()
	}
	return &stubResult{}
}

func TestPool_ConcurrencyBound(t *testing.T) {
	const workers = 8
	pool := NewPool(workers)
	pool.Start()

	var current, peak, completed int32
	var mu sync.Mutex

	const total = 40
	for i := 0; i < total; i++ {
		pool.Submit(&trackedJob{
			enter: func() {
				now := atomic.AddInt32(&current, 1)
				mu.Lock()
				if now > peak {
					peak = now
				}
				mu.Unlock()
			},
			leave: func() {
				atomic.AddInt32(&current, -1)
				atomic.AddInt32(&completed, 1)
			},
			sleep: 10 * time.Millisecond,
		})
	}

	pool.Wait()

	if n := atomic.LoadInt32(&completed); n != total {
		t.Errorf("completed %d jobs, want %d", n, total)
	}
	mu.Lock()
	got := peak
	mu.Unlock()
	if got > workers {
		t.Errorf("peak concurrency %d exceeded %d workers", got, workers)
	}
}

func TestPool_FailuresStayPerJob(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	pool.Submit(&stubJob{fail: true})
	pool.Submit(&stubJob{})
	pool.Submit(&stubJob{})

	results := pool.Wait()
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	failed := 0
	for _, res := range results {
		if res.GetError() != nil {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("got %d failed results, want 1", failed)
	}
}

// blockingJob holds its worker until the context is canceled.
type blockingJob struct {
	started chan struct{}
}

func (j *blockingJob) Execute(ctx context.Context) Result {
	close(j.started)
	<-ctx.Done()
	return &stubResult{err: ctx.Err()}
}

func TestNewPoolContext_ParentCancelStopsWorkers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewPoolContext(ctx, 1)
	pool.Start()

	job := &blockingJob{started: make(chan struct{})}
	pool.Submit(job)
	<-job.started

	cancel()

	done := make(chan struct{})
	go func() {
		pool.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after the parent context was canceled")
	}
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	pool := NewPool(2)
	pool.Start()
	pool.Shutdown()

	done := make(chan struct{})
	go func() {
		pool.Submit(&stubJob{})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit after Shutdown blocked")
	}
}

func TestPool_ShutdownClosesResults(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	started := make(chan struct{})
	pool.Submit(&trackedJob{
		enter: func() { close(started) },
		sleep: 200 * time.Millisecond,
	})
	<-started

	pool.Shutdown()

	done := make(chan struct{})
	go func() {
		for range pool.results {
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("results channel never closed after Shutdown")
	}
}
