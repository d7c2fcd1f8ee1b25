package statemachine_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/pkg/statemachine"
)

const (
	Idle      = statemachine.StringState("idle")
	Working   = statemachine.StringState("working")
	Succeeded = statemachine.StringState("succeeded")
	Failed    = statemachine.StringState("failed")

	Start  = statemachine.StringEvent("start")
	Finish = statemachine.StringEvent("finish")
	Abort  = statemachine.StringEvent("abort")
)

var workTransitions = []statemachine.TransitionDef{
	{From: Idle, To: Working, Event: Start},
	{From: Working, To: Succeeded, Event: Finish},
	{From: Idle, To: Failed, Event: Abort},
	{From: Working, To: Failed, Event: Abort},
}

func newMachine(t *testing.T, opts ...statemachine.Option) statemachine.StateMachine {
	t.Helper()
	base := []statemachine.Option{
		statemachine.WithTransitions(workTransitions),
		statemachine.WithTerminal(Succeeded, Failed),
	}
	sm, err := statemachine.New(Idle, append(base, opts...)...)
	require.NoError(t, err)
	return sm
}

func TestStateMachine(t *testing.T) {
	t.Parallel()

	t.Run("Basic Transitions", func(t *testing.T) {
		t.Parallel()
		sm := newMachine(t)
		ctx := context.Background()

		assert.Equal(t, Idle, sm.Current())

		err := sm.Fire(ctx, Finish)
		assert.True(t, statemachine.IsNoTransitionAvailableError(err))
		assert.Equal(t, Idle, sm.Current())

		require.NoError(t, sm.Fire(ctx, Start))
		require.NoError(t, sm.Fire(ctx, Finish))

		assert.Equal(t, Succeeded, sm.Current())
		assert.Equal(t, []statemachine.State{Idle, Working, Succeeded}, sm.Trail())
	})

	t.Run("Terminal State Rejects Events", func(t *testing.T) {
		t.Parallel()
		sm := statemachine.MustNew(Idle,
			statemachine.WithTransitions(append(workTransitions,
				statemachine.TransitionDef{From: Failed, To: Idle, Event: Start},
			)),
			statemachine.WithTerminal(Failed),
		)
		ctx := context.Background()

		require.NoError(t, sm.Fire(ctx, Abort))

		err := sm.Fire(ctx, Start)
		assert.True(t, statemachine.IsNoTransitionAvailableError(err))
		assert.Equal(t, Failed, sm.Current())
		assert.Equal(t, []statemachine.State{Idle, Failed}, sm.Trail())
	})

	t.Run("Observer Sees Every Transition", func(t *testing.T) {
		t.Parallel()
		var seen []string
		sm := newMachine(t, statemachine.WithObserver(func(_ context.Context, from, to statemachine.State, event statemachine.Event) {
			seen = append(seen, from.Name()+"->"+to.Name()+":"+event.Name())
		}))
		ctx := context.Background()

		require.NoError(t, sm.Fire(ctx, Start))
		require.NoError(t, sm.Fire(ctx, Abort))
		assert.Equal(t, []string{"idle->working:start", "working->failed:abort"}, seen)
	})

	t.Run("Trail Is A Copy", func(t *testing.T) {
		t.Parallel()
		sm := newMachine(t)
		trail := sm.Trail()
		trail[0] = Failed
		assert.Equal(t, []statemachine.State{Idle}, sm.Trail())
	})
}

func TestOptionErrors(t *testing.T) {
	t.Parallel()

	_, err := statemachine.New(nil)
	assert.Error(t, err)

	_, err = statemachine.New(Idle, statemachine.WithTerminal(nil))
	assert.ErrorIs(t, err, statemachine.ErrInvalidTransition)

	_, err = statemachine.New(Idle, statemachine.WithTransitions([]statemachine.TransitionDef{
		{From: Idle, To: Working, Event: Start},
		{From: Working, To: nil, Event: Finish},
	}))
	require.Error(t, err)
	assert.ErrorIs(t, err, statemachine.ErrInvalidTransition)
	assert.Contains(t, err.Error(), "transition[1]")

	_, err = statemachine.New(Idle, statemachine.WithTransitions([]statemachine.TransitionDef{
		{From: Idle, To: Working, Event: Start},
		{From: Idle, To: Failed, Event: Start},
	}))
	assert.ErrorIs(t, err, statemachine.ErrDuplicateEvent)

	assert.Panics(t, func() {
		statemachine.MustNew(nil)
	})

	sm := statemachine.MustNew(Idle)
	assert.ErrorIs(t, sm.Fire(context.Background(), nil), statemachine.ErrInvalidEvent)
}

func TestConcurrentReads(t *testing.T) {
	t.Parallel()
	sm := newMachine(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = sm.Current()
			_ = sm.Trail()
		}()
	}
	require.NoError(t, sm.Fire(ctx, Start))
	wg.Wait()
	assert.Equal(t, Working, sm.Current())
}
