package we

import (
	"context"

	"go.opentelemetry.io/otel"
)

const tracerName = "wee-counter"

type EntityService[T comparable] interface {
	Load(ctx context.Context) (Entity[T], error)
	Execute(ctx context.Context, command Command) (Reply, error)
	Operations() []OperationInfo
	Instructions() string
}

func CreateController[T comparable](store *Store[T], descriptor ServiceDescriptor[T]) *Controller[T] {
	handlers := make(CommandHandlers[T], len(descriptor.Operations))
	operations := make([]OperationInfo, 0, len(descriptor.Operations))
	for _, operation := range descriptor.Operations {
		handlers[operation.Name] = operation.Handler()
		operations = append(operations, OperationInfo{Name: operation.Name, Description: operation.Description, ReadOnly: operation.ReadOnly})
	}

	return &Controller[T]{
		store:        store,
		dispatcher:   &RoutedDispatcher[T]{Store: store, Handlers: handlers},
		operations:   operations,
		instructions: descriptor.Instructions,
	}
}

type Controller[T comparable] struct {
	store        *Store[T]
	dispatcher   Dispatcher
	operations   []OperationInfo
	instructions string
}

func (c *Controller[T]) Load(ctx context.Context) (Entity[T], error) {
	return c.store.Load(ctx)
}

func (c *Controller[T]) Execute(ctx context.Context, command Command) (Reply, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "execute command")
	defer span.End()

	return c.dispatcher.Dispatch(ctx, command)
}

// Operations lists the registered operations in descriptor order.
func (c *Controller[T]) Operations() []OperationInfo {
	operations := make([]OperationInfo, len(c.operations))
	copy(operations, c.operations)

	return operations
}

func (c *Controller[T]) Instructions() string {
	return c.instructions
}
