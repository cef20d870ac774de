package counter

import (
	"context"

	"github.com/weegigs/wee-counter/we"
)

const Greeting = "你好， 我是wee-counter"

func reply(entity we.Entity[Counter]) we.Reply {
	return we.Reply{Text: entity.State.String(), Revision: entity.Revision}
}

func update(ctx context.Context, store *we.Store[Counter], fn func(counter *Counter)) (we.Reply, error) {
	entity, err := store.Acquire(ctx, func(counter *Counter) error {
		fn(counter)
		return nil
	})
	if err != nil {
		return we.Reply{}, err
	}

	return reply(entity), nil
}

func increment() we.CommandHandler[Counter] {
	var handler we.CommandHandlerFunction[Counter, Increment] = func(ctx context.Context, cmd Increment, store *we.Store[Counter]) (we.Reply, error) {
		return update(ctx, store, func(counter *Counter) {
			counter.Current++
		})
	}

	return handler
}

func decrement() we.CommandHandler[Counter] {
	var handler we.CommandHandlerFunction[Counter, Decrement] = func(ctx context.Context, cmd Decrement, store *we.Store[Counter]) (we.Reply, error) {
		return update(ctx, store, func(counter *Counter) {
			counter.Current--
		})
	}

	return handler
}

func reset() we.CommandHandler[Counter] {
	var handler we.CommandHandlerFunction[Counter, Reset] = func(ctx context.Context, cmd Reset, store *we.Store[Counter]) (we.Reply, error) {
		return update(ctx, store, func(counter *Counter) {
			counter.Current = 0
		})
	}

	return handler
}

func getValue() we.CommandHandler[Counter] {
	var handler we.CommandHandlerFunction[Counter, GetValue] = func(ctx context.Context, cmd GetValue, store *we.Store[Counter]) (we.Reply, error) {
		entity, err := store.Load(ctx)
		if err != nil {
			return we.Reply{}, err
		}

		return reply(entity), nil
	}

	return handler
}

// echo never touches the store.
func echo() we.CommandHandler[Counter] {
	var handler we.CommandHandlerFunction[Counter, Echo] = func(ctx context.Context, cmd Echo, _ *we.Store[Counter]) (we.Reply, error) {
		return we.TextReply(Greeting), nil
	}

	return handler
}
