package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// ErrStopped возвращается Submit после остановки диспетчера
var ErrStopped = errors.New("dispatcher stopped")

// Job - фоновая задача. Run может вызываться несколько раз, если разрешены повторы.
// OnDone вызывается ровно один раз с итоговой ошибкой (nil при успехе).
type Job struct {
	Kind   string
	Run    func(ctx context.Context) error
	OnDone func(err error)
}

// Options задает ограничения диспетчера
type Options struct {
	Concurrency  int
	MaxAttempts  int
	RetryBackoff time.Duration
	// Timeout ограничивает одну попытку. Ноль означает без ограничения.
	Timeout time.Duration
}

// Dispatcher выполняет задачи в отдельных горутинах, ограничивая число одновременных
type Dispatcher struct {
	opts   Options
	sem    *semaphore.Weighted
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
}

// New создает диспетчер. Нулевые значения заменяются на одну попытку и одну задачу одновременно.
func New(opts Options) *Dispatcher {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		opts:   opts,
		sem:    semaphore.NewWeighted(int64(opts.Concurrency)),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Submit ставит задачу в работу и сразу возвращает ее идентификатор
func (d *Dispatcher) Submit(job Job) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return "", ErrStopped
	}

	id := uuid.NewString()
	d.wg.Add(1)
	go d.run(id, job)
	return id, nil
}

func (d *Dispatcher) run(id string, job Job) {
	defer d.wg.Done()
	log := slog.With("job_id", id, "kind", job.Kind)

	err := d.execute(log, job)
	if err != nil {
		log.Warn("job failed", "error", err)
	} else {
		log.Debug("job finished")
	}
	if job.OnDone != nil {
		job.OnDone(err)
	}
}

func (d *Dispatcher) execute(log *slog.Logger, job Job) error {
	if err := d.sem.Acquire(d.ctx, 1); err != nil {
		return fmt.Errorf("job was not started: %w", err)
	}
	defer d.sem.Release(1)

	attempt := 0
	policy := backoff.WithContext(
		backoff.WithMaxRetries(&linearBackOff{step: d.opts.RetryBackoff}, uint64(d.opts.MaxAttempts-1)),
		d.ctx,
	)
	return backoff.RetryNotify(func() error {
		attempt++
		return d.attempt(job)
	}, policy, func(err error, wait time.Duration) {
		log.Info("job attempt failed", "attempt", attempt, "max_attempts", d.opts.MaxAttempts, "retry_in", wait, "error", err)
	})
}

func (d *Dispatcher) attempt(job Job) error {
	ctx := d.ctx
	if d.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.opts.Timeout)
		defer cancel()
	}
	return job.Run(ctx)
}

// Stop отменяет выполняющиеся задачи и ждет их завершения, но не дольше ctx
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()
	d.cancel()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("dispatcher stop: %w", ctx.Err())
	}
}

// linearBackOff увеличивает паузу на step после каждой неудачной попытки
type linearBackOff struct {
	step time.Duration
	n    int
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.n++
	return b.step * time.Duration(b.n)
}

func (b *linearBackOff) Reset() { b.n = 0 }
