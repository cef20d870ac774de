package counter

import (
	"github.com/google/wire"

	"github.com/weegigs/wee-counter/we"
)

const Instructions = "this is a counter mcp server in go: increment, decrement, get_value and reset share a single counter, echo returns a fixed greeting"

type CounterStore = we.Store[Counter]

type CounterService = we.EntityService[Counter]

func CreateCounterDescriptor() we.ServiceDescriptor[Counter] {
	return we.ServiceDescriptor[Counter]{
		Instructions: Instructions,
		Operations: []we.Operation[Counter]{
			{Name: we.CommandNameOf(Increment{}), Description: "Increment the counter", Handler: increment},
			{Name: we.CommandNameOf(Decrement{}), Description: "Decrement the counter", Handler: decrement},
			{Name: we.CommandNameOf(GetValue{}), Description: "Get the current value of the counter", ReadOnly: true, Handler: getValue},
			{Name: we.CommandNameOf(Reset{}), Description: "Reset the counter to zero", Handler: reset},
			{Name: we.CommandNameOf(Echo{}), Description: "Echo a fixed greeting", ReadOnly: true, Handler: echo},
		},
	}
}

// NewCounterStore creates the store holding the counter, starting at zero.
func NewCounterStore(options []we.StoreOption) *CounterStore {
	return we.NewStore(Counter{}, options...)
}

func CreateCounterService(store *CounterStore) CounterService {
	return we.CreateController(store, CreateCounterDescriptor())
}

var Live = wire.NewSet(
	NewCounterStore,
	CreateCounterService,
)
