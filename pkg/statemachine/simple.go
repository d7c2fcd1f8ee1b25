package statemachine

import (
	"context"
	"sync"
)

// SimpleStateMachine provides a thread-safe in-memory state machine implementation.
// Transitions are indexed as [fromState][event].
type SimpleStateMachine struct {
	currentState State
	trail        []State
	terminal     map[string]bool
	observers    []Observer
	transitions  map[string]map[string]Transition
	mu           sync.RWMutex
}

func newSimpleStateMachine(initialState State) *SimpleStateMachine {
	return &SimpleStateMachine{
		currentState: initialState,
		trail:        []State{initialState},
		terminal:     make(map[string]bool),
		transitions:  make(map[string]map[string]Transition),
	}
}

func (sm *SimpleStateMachine) Current() State {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.currentState
}

// Trail returns every state the machine has been in since creation,
// starting with the initial state.
func (sm *SimpleStateMachine) Trail() []State {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	out := make([]State, len(sm.trail))
	copy(out, sm.trail)
	return out
}

func (sm *SimpleStateMachine) addTransition(from, to State, event Event) error {
	if from == nil || to == nil || event == nil {
		return ErrInvalidTransition
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	fromStateName := from.Name()
	if _, ok := sm.transitions[fromStateName]; !ok {
		sm.transitions[fromStateName] = make(map[string]Transition)
	}
	if _, ok := sm.transitions[fromStateName][event.Name()]; ok {
		return ErrDuplicateEvent
	}

	sm.transitions[fromStateName][event.Name()] = Transition{From: from, To: to, Event: event}
	return nil
}

// Fire applies the transition registered for the current state and event.
// Terminal states accept no events.
func (sm *SimpleStateMachine) Fire(ctx context.Context, event Event) error {
	if event == nil {
		return ErrInvalidEvent
	}

	sm.mu.Lock()
	from := sm.currentState
	t, ok := sm.transitions[from.Name()][event.Name()]
	if !ok || sm.terminal[from.Name()] {
		sm.mu.Unlock()
		return NewErrNoTransitionAvailable(from.Name(), event.Name())
	}

	sm.currentState = t.To
	sm.trail = append(sm.trail, t.To)
	observers := sm.observers
	sm.mu.Unlock()

	for _, obs := range observers {
		obs(ctx, from, t.To, event)
	}
	return nil
}
