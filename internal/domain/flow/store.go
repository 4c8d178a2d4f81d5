package flow

import (
	"log/slog"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/moby/locker"

	"github.com/IT-Nick/quizbot/internal/infra/timer"
)

// StateStore хранит состояния диалогов в памяти процесса.
// Состояние живет ttl с момента последнего Set; просроченное считается отсутствующим.
type StateStore struct {
	cache *ttlcache.Cache[string, State]
}

// NewStateStore создает хранилище. ttl <= 0 отключает истечение.
func NewStateStore(ttl time.Duration) *StateStore {
	if ttl < 0 {
		ttl = 0
	}
	return &StateStore{
		cache: ttlcache.New[string, State](
			ttlcache.WithTTL[string, State](ttl),
			// чтение не продлевает срок, его продлевает только Set
			ttlcache.WithDisableTouchOnHit[string, State](),
		),
	}
}

// Get возвращает активное состояние пользователя
func (s *StateStore) Get(userID string) (State, bool) {
	item := s.cache.Get(userID)
	if item == nil {
		return nil, false
	}
	return item.Value(), true
}

// Set сохраняет состояние и продлевает его срок
func (s *StateStore) Set(userID string, st State) {
	s.cache.Set(userID, st, ttlcache.DefaultTTL)
}

// Delete удаляет состояние пользователя
func (s *StateStore) Delete(userID string) {
	s.cache.Delete(userID)
}

// Sweep удаляет просроченные состояния и возвращает их количество
func (s *StateStore) Sweep() int {
	before := s.cache.Len()
	s.cache.DeleteExpired()
	return before - s.cache.Len()
}

// Janitor возвращает периодическую задачу очистки просроченных состояний
func (s *StateStore) Janitor(interval time.Duration) *timer.Ticker {
	return timer.NewTicker("state-janitor", interval, func(time.Time) {
		if n := s.Sweep(); n > 0 {
			slog.Debug("expired conversation states removed", "count", n)
		}
	})
}

// Describe возвращает имя активного диалога пользователя или пустую строку
func (s *StateStore) Describe(userID string) string {
	st, ok := s.Get(userID)
	if !ok {
		return ""
	}
	return st.flowName()
}

// userLocks сериализует обработку событий одного пользователя
type userLocks struct {
	locks *locker.Locker
}

func newUserLocks() *userLocks {
	return &userLocks{locks: locker.New()}
}

// lock захватывает блокировку пользователя и возвращает функцию освобождения
func (l *userLocks) lock(userID string) func() {
	l.locks.Lock(userID)
	return func() {
		if err := l.locks.Unlock(userID); err != nil {
			slog.Error("failed to release user lock", "user_id", userID, "error", err)
		}
	}
}
