package flow

import (
	"sync"
	"testing"
	"time"
)

func TestStateStore_TTL(t *testing.T) {
	s := NewStateStore(30 * time.Millisecond)

	s.Set("1", &CreateClassState{})
	if _, ok := s.Get("1"); !ok {
		t.Fatal("Состояние должно быть доступно сразу после Set")
	}

	time.Sleep(60 * time.Millisecond)
	if _, ok := s.Get("1"); ok {
		t.Error("Просроченное состояние должно считаться отсутствующим")
	}
	if got := s.Describe("1"); got != "" {
		t.Errorf("Просроченный диалог не должен описываться, получено %q", got)
	}
}

func TestStateStore_SetExtendsTTL(t *testing.T) {
	s := NewStateStore(80 * time.Millisecond)

	s.Set("1", &CreateTestState{Step: 1})
	time.Sleep(50 * time.Millisecond)
	s.Set("1", &CreateTestState{Step: 2})
	time.Sleep(50 * time.Millisecond)

	st, ok := s.Get("1")
	if !ok {
		t.Fatal("Set должен продлевать срок состояния")
	}
	if cs, ok := st.(*CreateTestState); !ok || cs.Step != 2 {
		t.Errorf("Ожидалось состояние шага 2, получено %#v", st)
	}
}

func TestStateStore_GetDoesNotExtendTTL(t *testing.T) {
	s := NewStateStore(60 * time.Millisecond)

	s.Set("1", &ViewResultsState{})
	time.Sleep(40 * time.Millisecond)
	if _, ok := s.Get("1"); !ok {
		t.Fatal("Состояние еще не должно истечь")
	}
	time.Sleep(40 * time.Millisecond)
	if _, ok := s.Get("1"); ok {
		t.Error("Чтение не должно продлевать срок состояния")
	}
}

func TestStateStore_Sweep(t *testing.T) {
	s := NewStateStore(30 * time.Millisecond)

	s.Set("1", &CreateClassState{})
	s.Set("2", &ViewResultsState{})
	if n := s.Sweep(); n != 0 {
		t.Errorf("Рано удалено %d состояний", n)
	}
	time.Sleep(60 * time.Millisecond)
	if n := s.Sweep(); n != 2 {
		t.Errorf("Ожидалось удаление 2 состояний, удалено %d", n)
	}
}

func TestStateStore_NoTTL(t *testing.T) {
	s := NewStateStore(0)
	s.Set("1", &CreateClassState{})
	time.Sleep(10 * time.Millisecond)
	if n := s.Sweep(); n != 0 {
		t.Errorf("Без TTL состояния не истекают, удалено %d", n)
	}
	if got := s.Describe("1"); got == "" {
		t.Error("Состояние без TTL должно оставаться активным")
	}
}

func TestUserLocks_SerializesSameUser(t *testing.T) {
	l := newUserLocks()
	var (
		mu      sync.Mutex
		inside  int
		overlap bool
		wg      sync.WaitGroup
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.lock("1")
			defer unlock()

			mu.Lock()
			inside++
			if inside > 1 {
				overlap = true
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()
	if overlap {
		t.Error("События одного пользователя обрабатывались одновременно")
	}
}

func TestUserLocks_DifferentUsersDoNotBlock(t *testing.T) {
	l := newUserLocks()
	unlock := l.lock("1")
	defer unlock()

	done := make(chan struct{})
	go func() {
		release := l.lock("2")
		release()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Блокировка одного пользователя не должна задерживать другого")
	}
}
