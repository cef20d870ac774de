package we

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/semaphore"
)

type StoreOption func(*storeOptions)

type storeOptions struct {
	clock     Clock
	observers []func(err error)
}

func WithClock(clock Clock) StoreOption {
	return func(options *storeOptions) {
		options.clock = clock
	}
}

// WithPoisonObserver registers a callback invoked once, outside the lock, when a
// scope panics and the store becomes unusable.
func WithPoisonObserver(observer func(err error)) StoreOption {
	return func(options *storeOptions) {
		options.observers = append(options.observers, observer)
	}
}

// Store owns a single value and serializes every access to it. Callers only reach
// the value inside a scope passed to Acquire.
type Store[T comparable] struct {
	lock      *semaphore.Weighted
	clock     Clock
	revisions *RevisionGenerator
	observers []func(err error)

	// guarded by lock
	state    T
	revision Revision
	poisoned *PoisonedError
}

func NewStore[T comparable](initial T, options ...StoreOption) *Store[T] {
	opts := &storeOptions{}
	for _, option := range options {
		option(opts)
	}

	if opts.clock == nil {
		opts.clock = defaultClock{}
	}

	return &Store[T]{
		lock:      semaphore.NewWeighted(1),
		clock:     opts.clock,
		revisions: NewRevisionGenerator(),
		observers: opts.observers,
		state:     initial,
		revision:  InitialRevision,
	}
}

// Acquire runs fn with exclusive access to a working copy of the value. The copy is
// committed only when fn returns nil. A context that ends before access is granted
// applies nothing; once granted, fn runs to completion.
func (s *Store[T]) Acquire(ctx context.Context, fn func(state *T) error) (Entity[T], error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "acquire")
	defer span.End()

	if err := ctx.Err(); err != nil {
		span.SetStatus(codes.Error, "cancelled before acquisition")
		return Entity[T]{}, errors.Wrap(err, "failed to acquire store")
	}

	if err := s.lock.Acquire(ctx, 1); err != nil {
		span.SetStatus(codes.Error, "cancelled before acquisition")
		return Entity[T]{}, errors.Wrap(err, "failed to acquire store")
	}

	entity, poisoned, err := s.scope(fn)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	if poisoned != nil {
		for _, observer := range s.observers {
			observer(poisoned)
		}
	}

	return entity, err
}

// Load returns a snapshot of the current value without modifying it.
func (s *Store[T]) Load(ctx context.Context) (Entity[T], error) {
	return s.Acquire(ctx, func(*T) error { return nil })
}

func (s *Store[T]) scope(fn func(state *T) error) (entity Entity[T], poisoned *PoisonedError, err error) {
	defer s.lock.Release(1)

	if s.poisoned != nil {
		return Entity[T]{}, nil, s.poisoned
	}

	defer func() {
		if r := recover(); r != nil {
			s.poisoned = &PoisonedError{Cause: r}
			entity, poisoned, err = Entity[T]{}, s.poisoned, s.poisoned
		}
	}()

	working := s.state
	if err := fn(&working); err != nil {
		return Entity[T]{}, nil, err
	}

	if working != s.state {
		s.state = working
		s.revision = s.revisions.NewRevision(s.clock.Now())
	}

	return Entity[T]{
		Revision: s.revision,
		Type:     EntityTypeOf(s.state),
		State:    s.state,
	}, nil, nil
}
