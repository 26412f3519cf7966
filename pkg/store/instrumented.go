package store

import (
	"context"
	"time"
)

// OpObserver receives the timing of one store operation.
type OpObserver func(op, key string, duration time.Duration)

// Instrumented decorates a Store with per-operation timing observations.
// Failed operations are observed too.
type Instrumented struct {
	next    Store
	observe OpObserver
}

// NewInstrumented wraps next so every Get and Put is reported to observe.
func NewInstrumented(next Store, observe OpObserver) *Instrumented {
	return &Instrumented{next: next, observe: observe}
}

// Get implements Store.
func (s *Instrumented) Get(ctx context.Context, key string, v interface{}) error {
	start := time.Now()
	err := s.next.Get(ctx, key, v)
	s.observe("get", key, time.Since(start))
	return err
}

// Put implements Store.
func (s *Instrumented) Put(ctx context.Context, key string, v interface{}) error {
	start := time.Now()
	err := s.next.Put(ctx, key, v)
	s.observe("put", key, time.Since(start))
	return err
}
