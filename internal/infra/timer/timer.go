package timer

import (
	"context"
	"log/slog"
	"time"
)

// Ticker периодически вызывает функцию до отмены контекста
type Ticker struct {
	name     string
	interval time.Duration
	tick     func(now time.Time)
}

// NewTicker создает периодическую задачу с именем для логов
func NewTicker(name string, interval time.Duration, tick func(now time.Time)) *Ticker {
	return &Ticker{name: name, interval: interval, tick: tick}
}

// Run блокируется до отмены ctx, вызывая tick каждые interval
func (t *Ticker) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Debug("ticker stopped", "name", t.name)
			return
		case now := <-ticker.C:
			t.tick(now)
		}
	}
}
