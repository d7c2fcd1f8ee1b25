// Package statemachine implements a small finite state machine used to track
// the lifecycle of a single unit of work, such as one send attempt.
//
// States and events are plain interfaces; StringState and StringEvent cover the
// common case. Transitions are declared up front with WithTransitions, at most
// one per state and event. WithTerminal marks end states that accept no further
// events, WithObserver registers callbacks that run after each applied
// transition, and Trail reports the path taken so far.
//
// # Usage
//
//	const (
//	    Idle    = statemachine.StringState("idle")
//	    Sending = statemachine.StringState("sending")
//	    Done    = statemachine.StringState("done")
//	    Send    = statemachine.StringEvent("send")
//	    Finish  = statemachine.StringEvent("finish")
//	)
//
//	machine := statemachine.MustNew(Idle,
//	    statemachine.WithTransitions([]statemachine.TransitionDef{
//	        {From: Idle, To: Sending, Event: Send},
//	        {From: Sending, To: Done, Event: Finish},
//	    }),
//	    statemachine.WithTerminal(Done),
//	)
//
//	_ = machine.Fire(ctx, Send)
//
// # Errors
//
// Fire returns *ErrNoTransitionAvailable when nothing is defined for the current
// state and event, including any event fired from a terminal state.
package statemachine
