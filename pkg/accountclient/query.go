package accountclient

import (
	"context"
	"sync"
)

// Query is a snapshot of a read.
type Query[T any] struct {
	Data      T
	IsLoading bool
	Err       error
	// Enabled is false for queries that were never sent, such as an account lookup without id.
	Enabled bool
}

// Status is the lifecycle state of a Mutation.
type Status int

// Mutation states.
const (
	StatusIdle Status = iota
	StatusPending
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	}

	return "unknown"
}

// Mutation runs a write against the API and tracks its status.
type Mutation[In, Out any] struct {
	run       func(ctx context.Context, in In) (Out, error)
	onSuccess func(Out)

	mu     sync.Mutex
	status Status
}

func newMutation[In, Out any](run func(context.Context, In) (Out, error), onSuccess func(Out)) *Mutation[In, Out] {
	return &Mutation[In, Out]{run: run, onSuccess: onSuccess}
}

// Mutate performs the write once. It is never retried.
func (m *Mutation[In, Out]) Mutate(ctx context.Context, in In) (Out, error) {
	m.set(StatusPending)

	out, err := m.run(ctx, in)
	if err != nil {
		m.set(StatusError)
		return out, err
	}

	if m.onSuccess != nil {
		m.onSuccess(out)
	}

	m.set(StatusSuccess)

	return out, nil
}

// Status returns the current state of m.
func (m *Mutation[In, Out]) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.status
}

func (m *Mutation[In, Out]) set(status Status) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.status = status
}
