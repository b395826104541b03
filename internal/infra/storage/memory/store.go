package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrUnavailable имитирует недоступность хранилища (см. FailNext)
var ErrUnavailable = errors.New("memory: store unavailable")

// Store in-memory key-value хранилище для тестов и запуска без базы данных.
// Значения копируются на входе и выходе, чтобы вызывающий код не мог изменить сохранённые данные.
type Store struct {
	mu       sync.RWMutex
	items    map[string][]byte
	failures int
}

func NewStore() *Store {
	return &Store{items: make(map[string][]byte)}
}

// FailNext заставляет следующие n операций вернуть ErrUnavailable
func (s *Store) FailNext(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = n
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.consumeFailure() {
		return ErrUnavailable
	}
	s.items[key] = clone(value)
	return nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.consumeFailure() {
		return nil, false, ErrUnavailable
	}
	value, ok := s.items[key]
	if !ok {
		return nil, false, nil
	}
	return clone(value), true, nil
}

func (s *Store) GetByPrefix(_ context.Context, prefix string) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.consumeFailure() {
		return nil, ErrUnavailable
	}
	values := make([][]byte, 0)
	for key, value := range s.items {
		if strings.HasPrefix(key, prefix) {
			values = append(values, clone(value))
		}
	}
	return values, nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.consumeFailure() {
		return ErrUnavailable
	}
	delete(s.items, key)
	return nil
}

// Len количество ключей
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) consumeFailure() bool {
	if s.failures <= 0 {
		return false
	}
	s.failures--
	return true
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
