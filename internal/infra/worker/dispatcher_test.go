package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func waitDone(t *testing.T, ch <-chan error) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("Задача не завершилась вовремя")
		return nil
	}
}

func TestDispatcher_RunsJobAndReportsOutcome(t *testing.T) {
	d := New(Options{Concurrency: 2})
	defer d.Stop(context.Background())

	done := make(chan error, 1)
	id, err := d.Submit(Job{
		Kind:   "test",
		Run:    func(context.Context) error { return nil },
		OnDone: func(err error) { done <- err },
	})
	if err != nil {
		t.Fatalf("Submit вернул ошибку: %v", err)
	}
	if id == "" {
		t.Errorf("Ожидался непустой идентификатор задачи")
	}
	if err := waitDone(t, done); err != nil {
		t.Errorf("Ожидался успех, получено %v", err)
	}
}

func TestDispatcher_SingleAttemptByDefault(t *testing.T) {
	d := New(Options{})
	defer d.Stop(context.Background())

	var calls atomic.Int32
	done := make(chan error, 1)
	boom := errors.New("boom")
	_, _ = d.Submit(Job{
		Run: func(context.Context) error {
			calls.Add(1)
			return boom
		},
		OnDone: func(err error) { done <- err },
	})
	if err := waitDone(t, done); !errors.Is(err, boom) {
		t.Errorf("Ожидалась ошибка boom, получено %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("Ожидалась одна попытка, получено %d", calls.Load())
	}
}

func TestDispatcher_RetriesUntilSuccess(t *testing.T) {
	d := New(Options{MaxAttempts: 3, RetryBackoff: time.Millisecond})
	defer d.Stop(context.Background())

	var calls atomic.Int32
	done := make(chan error, 1)
	_, _ = d.Submit(Job{
		Run: func(context.Context) error {
			if calls.Add(1) < 3 {
				return errors.New("temporary")
			}
			return nil
		},
		OnDone: func(err error) { done <- err },
	})
	if err := waitDone(t, done); err != nil {
		t.Errorf("Ожидался успех на третьей попытке, получено %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("Ожидалось 3 попытки, получено %d", calls.Load())
	}
}

func TestDispatcher_BoundsConcurrency(t *testing.T) {
	d := New(Options{Concurrency: 2})
	defer d.Stop(context.Background())

	var running, peak atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		_, _ = d.Submit(Job{
			Run: func(context.Context) error {
				n := running.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				running.Add(-1)
				return nil
			},
			OnDone: func(error) { wg.Done() },
		})
	}
	wg.Wait()
	if peak.Load() > 2 {
		t.Errorf("Одновременно выполнялось %d задач при лимите 2", peak.Load())
	}
}

func TestDispatcher_StopCancelsRunningJobs(t *testing.T) {
	d := New(Options{})
	started := make(chan struct{})
	done := make(chan error, 1)
	_, _ = d.Submit(Job{
		Run: func(ctx context.Context) error {
			close(started)
			<-ctx.Done()
			return ctx.Err()
		},
		OnDone: func(err error) { done <- err },
	})
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := d.Stop(ctx); err != nil {
		t.Fatalf("Stop вернул ошибку: %v", err)
	}
	if err := waitDone(t, done); !errors.Is(err, context.Canceled) {
		t.Errorf("Ожидалась отмена, получено %v", err)
	}
	if _, err := d.Submit(Job{Run: func(context.Context) error { return nil }}); !errors.Is(err, ErrStopped) {
		t.Errorf("Submit после Stop: ожидалась ErrStopped, получено %v", err)
	}
}

func TestDispatcher_AttemptTimeout(t *testing.T) {
	d := New(Options{Timeout: 10 * time.Millisecond})
	defer d.Stop(context.Background())

	done := make(chan error, 1)
	_, _ = d.Submit(Job{
		Run: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
		OnDone: func(err error) { done <- err },
	})
	if err := waitDone(t, done); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Ожидался таймаут попытки, получено %v", err)
	}
}

func TestDispatcher_StopInterruptsBackoff(t *testing.T) {
	d := New(Options{MaxAttempts: 5, RetryBackoff: time.Hour})

	var calls atomic.Int32
	failed := make(chan struct{})
	done := make(chan error, 1)
	_, _ = d.Submit(Job{
		Run: func(context.Context) error {
			if calls.Add(1) == 1 {
				close(failed)
			}
			return errors.New("temporary")
		},
		OnDone: func(err error) { done <- err },
	})
	<-failed

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := d.Stop(ctx); err != nil {
		t.Fatalf("Stop вернул ошибку: %v", err)
	}
	if err := waitDone(t, done); !errors.Is(err, context.Canceled) {
		t.Errorf("Ожидалась отмена во время паузы, получено %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("После остановки повторов быть не должно, получено %d попыток", calls.Load())
	}
}

func TestLinearBackOff(t *testing.T) {
	b := &linearBackOff{step: 2 * time.Second}
	for i, want := range []time.Duration{2 * time.Second, 4 * time.Second, 6 * time.Second} {
		if got := b.NextBackOff(); got != want {
			t.Errorf("Пауза %d: ожидалось %v, получено %v", i+1, want, got)
		}
	}
	b.Reset()
	if got := b.NextBackOff(); got != 2*time.Second {
		t.Errorf("После Reset ожидалось 2s, получено %v", got)
	}
}
