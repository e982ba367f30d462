// Package cache provides the single-slot TTL cache that guards the
// dashboard refresh pipeline. One entry lives at a time; concurrent callers
// that observe an empty or expired slot share a single in-flight refresh.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// RefreshFunc produces a fresh value when the slot is empty or expired.
type RefreshFunc[T any] func(ctx context.Context) (T, error)

// Slot is a single-entry cache with TTL expiry. The refresh runs outside
// the mutex so a slow recompute never blocks readers of a still-valid
// value, and singleflight coalesces concurrent recomputes into one.
type Slot[T any] struct {
	mu        sync.Mutex
	value     T
	expiresAt time.Time
	valid     bool

	ttl     time.Duration
	refresh RefreshFunc[T]
	group   singleflight.Group
	now     func() time.Time
}

// NewSlot creates an empty Slot that fills itself via refresh.
func NewSlot[T any](ttl time.Duration, refresh RefreshFunc[T]) *Slot[T] {
	return &Slot[T]{
		ttl:     ttl,
		refresh: refresh,
		now:     time.Now,
	}
}

// Get returns the cached value when it is still valid and forceRefresh is
// false; otherwise it runs the refresh pipeline and replaces the entry.
// A failed refresh leaves any existing entry untouched and returns the
// error; stale values are never served in place of an error.
func (s *Slot[T]) Get(ctx context.Context, forceRefresh bool) (T, error) {
	if !forceRefresh {
		if v, ok := s.peek(); ok {
			return v, nil
		}
	}

	v, err, shared := s.group.Do("refresh", func() (any, error) {
		// A caller queued behind a finished refresh sees the new entry
		// here instead of triggering another recompute.
		if !forceRefresh {
			if v, ok := s.peek(); ok {
				return v, nil
			}
		}
		fresh, err := s.refresh(ctx)
		if err != nil {
			return nil, err
		}
		s.store(fresh)
		return fresh, nil
	})
	if err != nil {
		slog.WarnContext(ctx, "Cache refresh failed", "error", err, "shared", shared)
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Peek returns the cached value without triggering a refresh.
func (s *Slot[T]) Peek() (T, bool) {
	return s.peek()
}

// Invalidate drops the current entry so the next Get refreshes.
func (s *Slot[T]) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	s.value = zero
	s.valid = false
}

func (s *Slot[T]) peek() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.valid || !s.now().Before(s.expiresAt) {
		var zero T
		return zero, false
	}
	return s.value, true
}

func (s *Slot[T]) store(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = v
	s.expiresAt = s.now().Add(s.ttl)
	s.valid = true
}
