package memory

import (
	"slices"
	"sync"
)

// store는 삽입 순서를 유지하는 인메모리 키-값 저장소입니다 (개발/테스트용)
type store[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
	clone func(T) T
}

func newStore[T any](clone func(T) T) *store[T] {
	return &store[T]{
		items: make(map[string]T),
		clone: clone,
	}
}

// put은 값을 저장합니다. 기존 키는 순서를 유지한 채 교체됩니다
func (s *store[T]) put(id string, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		s.order = append(s.order, id)
	}
	s.items[id] = s.clone(value)
}

func (s *store[T]) get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	return s.clone(value), true
}

func (s *store[T]) delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return
	}
	delete(s.items, id)
	s.order = slices.DeleteFunc(s.order, func(key string) bool { return key == id })
}

// snapshot은 호출 시점의 값 복사본을 삽입 순서대로 반환합니다
func (s *store[T]) snapshot(keep func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]T, 0, len(s.order))
	for _, id := range s.order {
		value := s.items[id]
		if keep == nil || keep(value) {
			result = append(result, s.clone(value))
		}
	}
	return result
}
