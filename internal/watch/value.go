// Package watch provides an observable value holder.
//
// A Value notifies its watchers once per distinct transition. Writing the
// value it already holds is a no-op and never reaches watchers.
package watch

import (
	"sync"

	"github.com/google/uuid"
)

// Watcher is called with the previous and the new value after a transition.
type Watcher[T comparable] func(prev, next T)

type entry[T comparable] struct {
	id string
	fn Watcher[T]
}

// Value holds a comparable value and the watchers registered against it.
type Value[T comparable] struct {
	mu       sync.RWMutex
	current  T
	watchers []entry[T]
}

// NewValue creates a Value seeded with initial. Seeding is not a transition.
func NewValue[T comparable](initial T) *Value[T] {
	return &Value[T]{current: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Set stores next and notifies watchers if it differs from the current value.
// Returns true when the value changed.
func (v *Value[T]) Set(next T) bool {
	prev, changed, watchers := v.store(next)
	if !changed {
		return false
	}

	// Watchers run outside the lock so they may read or write the value.
	for _, w := range watchers {
		w.fn(prev, next)
	}
	return true
}

// SetSilently stores next without notifying watchers.
// Returns true when the value changed.
func (v *Value[T]) SetSilently(next T) bool {
	_, changed, _ := v.store(next)
	return changed
}

func (v *Value[T]) store(next T) (prev T, changed bool, watchers []entry[T]) {
	v.mu.Lock()
	defer v.mu.Unlock()

	prev = v.current
	if prev == next {
		return prev, false, nil
	}
	v.current = next

	watchers = make([]entry[T], len(v.watchers))
	copy(watchers, v.watchers)
	return prev, true, watchers
}

// Watch registers fn and returns a function that removes it again.
// Watchers are called in registration order.
func (v *Value[T]) Watch(fn Watcher[T]) (cancel func()) {
	id := uuid.NewString()

	v.mu.Lock()
	v.watchers = append(v.watchers, entry[T]{id: id, fn: fn})
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { v.remove(id) })
	}
}

func (v *Value[T]) remove(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for i, w := range v.watchers {
		if w.id == id {
			v.watchers = append(v.watchers[:i:i], v.watchers[i+1:]...)
			return
		}
	}
}

// Watchers returns the number of registered watchers.
func (v *Value[T]) Watchers() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.watchers)
}
