package scheduler

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/food_order/pkg/logging"
)

// syncBuffer lets the test read log output while scheduler goroutines write.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestScheduler_RunsUntilStopped(t *testing.T) {
	var runs atomic.Int32
	s, err := New(logging.Discard())
	require.NoError(t, err)
	require.NoError(t, s.Add(Task{Name: "tick", Interval: 10 * time.Millisecond, Run: func(context.Context) error {
		runs.Add(1)
		return nil
	}}))

	s.Start()
	require.Eventually(t, func() bool { return runs.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, s.Stop())

	after := runs.Load()
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, after, runs.Load())
}

func TestScheduler_ErrorsAndPanicsKeepTicking(t *testing.T) {
	var buf syncBuffer
	var runs atomic.Int32
	s, err := New(logging.NewWithWriter(&buf, "info"))
	require.NoError(t, err)
	require.NoError(t, s.Add(Task{Name: "flaky", Interval: 10 * time.Millisecond, Run: func(context.Context) error {
		switch runs.Add(1) {
		case 1:
			return errors.New("db down")
		case 2:
			panic("boom")
		}
		return nil
	}}))

	s.Start()
	require.Eventually(t, func() bool { return runs.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, s.Stop())

	out := buf.String()
	require.Contains(t, out, `"msg":"task_failed"`)
	require.Contains(t, out, "db down")
	require.Contains(t, out, "boom")
}

func TestScheduler_RunsDoNotOverlap(t *testing.T) {
	var running, maxRunning, runs atomic.Int32
	s, err := New(logging.Discard())
	require.NoError(t, err)
	require.NoError(t, s.Add(Task{Name: "slow", Interval: 5 * time.Millisecond, Run: func(context.Context) error {
		n := running.Add(1)
		defer running.Add(-1)
		for {
			m := maxRunning.Load()
			if n <= m || maxRunning.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(30 * time.Millisecond)
		runs.Add(1)
		return nil
	}}))

	s.Start()
	require.Eventually(t, func() bool { return runs.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, s.Stop())

	require.Equal(t, int32(1), maxRunning.Load())
}

func TestScheduler_StopCancelsRunningTask(t *testing.T) {
	started := make(chan struct{})
	var once sync.Once
	s, err := New(logging.Discard())
	require.NoError(t, err)
	require.NoError(t, s.Add(Task{Name: "blocking", Interval: 5 * time.Millisecond, Run: func(ctx context.Context) error {
		once.Do(func() { close(started) })
		<-ctx.Done()
		return ctx.Err()
	}}))

	s.Start()
	<-started

	begin := time.Now()
	require.NoError(t, s.Stop())
	require.Less(t, time.Since(begin), 5*time.Second)
}

func TestScheduler_SkipsNonPositiveInterval(t *testing.T) {
	s, err := New(logging.Discard())
	require.NoError(t, err)
	require.NoError(t, s.Add(Task{Name: "never", Run: func(context.Context) error { return nil }}))
	require.NoError(t, s.Stop())
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	s, err := New(logging.Discard())
	require.NoError(t, err)
	require.NoError(t, s.Stop())
}
