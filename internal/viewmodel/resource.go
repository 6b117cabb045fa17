// Package viewmodel implements the state machines behind the dashboard,
// forecast, transaction list, recurring rule and selector screens. View
// models fetch through the API client, hold the loaded data and derive
// everything a front end renders; they contain no rendering themselves.
package viewmodel

import (
	"context"
	"sync"
)

// Phase is the lifecycle state of a fetched resource.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseError
)

// resource guards a fetched value against stale responses. Every fetch gets
// a generation token from begin; complete discards results whose token is no
// longer current, so a slow response can never clobber a newer one when
// inputs are toggled rapidly.
type resource[T any] struct {
	mu         sync.Mutex
	phase      Phase
	generation uint64
	value      T
	err        error

	cancel context.CancelFunc
}

// begin starts a new fetch. The previous in-flight request, if any, is
// canceled. The returned context must be used for the request and the token
// passed back to complete.
func (r *resource[T]) begin(ctx context.Context) (context.Context, uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		r.cancel()
	}

	ctx, r.cancel = context.WithCancel(ctx)
	r.generation++
	r.phase = PhaseLoading
	return ctx, r.generation
}

// complete records the result of the fetch started with the given token.
// It reports whether the result was current; stale results are dropped.
func (r *resource[T]) complete(token uint64, value T, err error) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if token != r.generation {
		return false
	}

	if err != nil {
		r.phase = PhaseError
		r.err = err
		var zero T
		r.value = zero
		return true
	}

	r.phase = PhaseSuccess
	r.err = nil
	r.value = value
	return true
}

// state returns the phase, value and error under one lock acquisition.
func (r *resource[T]) state() (Phase, T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase, r.value, r.err
}
