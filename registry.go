package hhsav

import (
	"reflect"
	"sync"
)

var (
	views   = make(map[reflect.Type]any)
	viewsMu sync.RWMutex
)

// UseView returns a cached view for T or builds a new one.
func UseView[T Cloner[T]]() (*View[T], error) {
	typ := reflect.TypeFor[T]()

	// Fast path: read-lock cache check
	viewsMu.RLock()
	if cached, ok := views[typ]; ok {
		viewsMu.RUnlock()
		return cached.(*View[T]), nil
	}
	viewsMu.RUnlock()

	// Slow path: build and cache with write-lock
	viewsMu.Lock()
	defer viewsMu.Unlock()

	// Double-check pattern
	if cached, ok := views[typ]; ok {
		return cached.(*View[T]), nil
	}

	view, err := NewView[T]()
	if err != nil {
		return nil, err
	}

	views[typ] = view
	return view, nil
}

// ResetViews clears the view cache.
// This is primarily useful for test isolation.
func ResetViews() {
	viewsMu.Lock()
	defer viewsMu.Unlock()
	views = make(map[reflect.Type]any)
}
