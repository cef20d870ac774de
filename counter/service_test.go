package counter

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/jaswdr/faker"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weegigs/wee-counter/we"
)

func newService(options ...we.StoreOption) (*CounterStore, CounterService) {
	store := NewCounterStore(options)
	return store, CreateCounterService(store)
}

func execute(t *testing.T, service CounterService, commands ...we.Command) we.Reply {
	var reply we.Reply
	for _, command := range commands {
		var err error
		reply, err = service.Execute(context.Background(), command)
		require.NoError(t, err, "executing %s", we.CommandNameOf(command))
	}

	return reply
}

func namesOperations(t *testing.T) {
	_, service := newService()

	names := make([]we.CommandName, 0)
	readOnly := make([]we.CommandName, 0)
	for _, operation := range service.Operations() {
		names = append(names, operation.Name)
		assert.NotEmpty(t, operation.Description)
		if operation.ReadOnly {
			readOnly = append(readOnly, operation.Name)
		}
	}

	assert.Equal(t, []we.CommandName{"increment", "decrement", "get_value", "reset", "echo"}, names)
	assert.Equal(t, []we.CommandName{"get_value", "echo"}, readOnly)
	assert.Equal(t, Instructions, service.Instructions())
}

func incrementsAndDecrements(t *testing.T) {
	_, service := newService()

	reply := execute(t, service, Increment{}, Increment{}, Decrement{}, GetValue{})
	assert.Equal(t, "1", reply.Text)
}

func resetsToZero(t *testing.T) {
	_, service := newService()

	assert.Equal(t, "0", execute(t, service, Reset{}).Text)
	assert.Equal(t, "0", execute(t, service, GetValue{}).Text)

	f := faker.New()
	steps := f.IntBetween(1, 50)
	for i := 0; i < steps; i++ {
		execute(t, service, Decrement{})
	}
	assert.Equal(t, strconv.Itoa(-steps), execute(t, service, GetValue{}).Text)

	assert.Equal(t, "0", execute(t, service, Reset{}).Text)
	assert.Equal(t, "0", execute(t, service, GetValue{}).Text)
}

func readsAreIdempotent(t *testing.T) {
	_, service := newService()
	first := execute(t, service, Increment{}, Increment{}, GetValue{})

	for i := 0; i < 10; i++ {
		assert.Equal(t, first, execute(t, service, GetValue{}))
	}
}

func echoesGreeting(t *testing.T) {
	_, service := newService()

	assert.Equal(t, Greeting, execute(t, service, Echo{}).Text)
	assert.Equal(t, "0", execute(t, service, GetValue{}).Text)

	f := faker.New()
	for i := f.IntBetween(1, 20); i > 0; i-- {
		execute(t, service, Increment{})
	}
	before := execute(t, service, GetValue{})

	assert.Equal(t, Greeting, execute(t, service, Echo{}).Text)
	assert.Equal(t, before, execute(t, service, GetValue{}))
}

func echoDoesNotAcquire(t *testing.T) {
	store, service := newService()

	held := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = store.Acquire(context.Background(), func(*Counter) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	reply, err := service.Execute(context.Background(), Echo{})
	close(release)
	<-done

	require.NoError(t, err)
	assert.Equal(t, Greeting, reply.Text)
	assert.Empty(t, reply.Revision)
}

func countsConcurrentIncrements(t *testing.T) {
	_, service := newService()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Execute(context.Background(), Increment{})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, "100", execute(t, service, GetValue{}).Text)
}

func appliesNetEffect(t *testing.T) {
	_, service := newService()
	f := faker.New()

	increments := f.IntBetween(50, 150)
	decrements := f.IntBetween(50, 150)

	var wg sync.WaitGroup
	run := func(command we.Command, times int) {
		for i := 0; i < times; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := service.Execute(context.Background(), command)
				assert.NoError(t, err)
			}()
		}
	}
	run(Increment{}, increments)
	run(Decrement{}, decrements)
	wg.Wait()

	assert.Equal(t, strconv.Itoa(increments-decrements), execute(t, service, GetValue{}).Text)
}

func observesOnlyWrittenValues(t *testing.T) {
	_, service := newService()

	const writers = 50
	var wg sync.WaitGroup
	var lk sync.Mutex
	written := map[string]bool{"0": true}
	var reads []string

	for i := 0; i < writers; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			reply, err := service.Execute(context.Background(), Increment{})
			if assert.NoError(t, err) {
				lk.Lock()
				written[reply.Text] = true
				lk.Unlock()
			}
		}()
		go func() {
			defer wg.Done()
			reply, err := service.Execute(context.Background(), GetValue{})
			if assert.NoError(t, err) {
				lk.Lock()
				reads = append(reads, reply.Text)
				lk.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, written, writers+1)
	for _, read := range reads {
		assert.True(t, written[read], "read %s was never written", read)
	}
}

func failsAfterPoisoning(t *testing.T) {
	var poisoned error
	store, service := newService(we.WithPoisonObserver(func(err error) { poisoned = err }))

	execute(t, service, Increment{})
	_, _ = store.Acquire(context.Background(), func(*Counter) error {
		panic("lock holder crashed")
	})
	assert.True(t, errors.Is(poisoned, we.ErrPoisoned))

	for _, command := range []we.Command{Increment{}, Decrement{}, GetValue{}, Reset{}} {
		_, err := service.Execute(context.Background(), command)
		assert.True(t, errors.Is(err, we.ErrPoisoned), "%s should fail", we.CommandNameOf(command))
	}

	assert.Equal(t, Greeting, execute(t, service, Echo{}).Text)
}

func executesRemoteCommands(t *testing.T) {
	_, service := newService()

	reply, err := service.Execute(context.Background(), we.RemoteCommand{CommandName: "increment"})
	require.NoError(t, err)
	assert.Equal(t, "1", reply.Text)

	_, err = service.Execute(context.Background(), we.RemoteCommand{CommandName: "increment", Arguments: []byte(`{"amount":5}`)})
	var invalid *we.InvalidArgumentsError
	assert.True(t, errors.As(err, &invalid))

	assert.Equal(t, "1", execute(t, service, GetValue{}).Text)
}

func TestCounterService(t *testing.T) {
	t.Run("names operations", namesOperations)
	t.Run("increments and decrements", incrementsAndDecrements)
	t.Run("resets to zero", resetsToZero)
	t.Run("reads are idempotent", readsAreIdempotent)
	t.Run("echoes greeting", echoesGreeting)
	t.Run("echo does not acquire the store", echoDoesNotAcquire)
	t.Run("counts concurrent increments", countsConcurrentIncrements)
	t.Run("applies net effect of concurrent updates", appliesNetEffect)
	t.Run("observes only written values", observesOnlyWrittenValues)
	t.Run("fails after poisoning", failsAfterPoisoning)
	t.Run("executes remote commands", executesRemoteCommands)
}
