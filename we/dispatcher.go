package we

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type CommandHandlers[T comparable] map[CommandName]CommandHandler[T]

type Dispatcher interface {
	Dispatch(ctx context.Context, command Command) (Reply, error)
}

type RoutedDispatcher[T comparable] struct {
	Store    *Store[T]
	Handlers CommandHandlers[T]
}

func (d *RoutedDispatcher[T]) Dispatch(ctx context.Context, command Command) (Reply, error) {
	commandName := CommandNameOf(command)

	ctx, span := otel.Tracer(tracerName).Start(ctx, fmt.Sprintf("dispatch %s", commandName))
	defer span.End()

	handler := d.Handlers[commandName]
	if handler == nil {
		err := CommandNotFound(commandName)
		span.SetStatus(codes.Error, err.Error())
		return Reply{}, err
	}

	reply, err := execute(ctx, handler, command, d.Store)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Reply{}, err
	}

	if reply.Revision != "" {
		span.SetAttributes(
			attribute.String("revision", reply.Revision.String()),
			attribute.String("revision.committed_at", reply.Revision.Timestamp().String()),
		)
	}

	return reply, nil
}

func execute[T comparable](ctx context.Context, handler CommandHandler[T], command Command, store *Store[T]) (Reply, error) {
	switch cmd := command.(type) {
	case RemoteCommand:
		return handler.HandleRemoteCommand(ctx, cmd, store)
	case *RemoteCommand:
		return handler.HandleRemoteCommand(ctx, *cmd, store)
	default:
		return handler.HandleCommand(ctx, cmd, store)
	}
}
