// Package utils holds the generic concurrency containers the bus leans on:
// a lock-guarded map and a bounded blocking queue. Neither carries any
// protocol semantics.
package utils

import "sync"

// SafeMap wraps a plain map behind a RWMutex and exposes only vetted,
// lock-guarded operations. No iterators escape the lock; multi-step work
// goes through WithLock instead.
type SafeMap[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V
}

// NewSafeMap returns an empty map.
func NewSafeMap[K comparable, V any]() *SafeMap[K, V] {
	return &SafeMap[K, V]{m: make(map[K]V)}
}

// Get returns the value for key and whether it was present.
func (s *SafeMap[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok
}

// Set stores value under key, replacing any previous value.
func (s *SafeMap[K, V]) Set(key K, value V) {
	s.mu.Lock()
	s.m[key] = value
	s.mu.Unlock()
}

// SetIfAbsent stores value only when key is not present yet and reports
// whether it stored.
func (s *SafeMap[K, V]) SetIfAbsent(key K, value V) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[key]; ok {
		return false
	}
	s.m[key] = value
	return true
}

// Delete removes key and reports whether it was present.
func (s *SafeMap[K, V]) Delete(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.m[key]
	if ok {
		delete(s.m, key)
	}
	return ok
}

// Len returns the number of stored entries.
func (s *SafeMap[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

// Range calls fn for each entry under the read lock until fn returns false.
// fn must not call back into the map.
func (s *SafeMap[K, V]) Range(fn func(key K, value V) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for k, v := range s.m {
		if !fn(k, v) {
			return
		}
	}
}

// WithLock runs fn with exclusive access to the underlying map. It is the
// bulk-transaction entry point for multi-step mutations that must be atomic.
// fn must not retain the map past its return.
func (s *SafeMap[K, V]) WithLock(fn func(m map[K]V)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.m)
}
