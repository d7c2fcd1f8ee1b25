package messaging

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/pkg/statemachine"
)

// Attempt states.
var (
	StateIdle               = statemachine.StringState("idle")
	StateValidating         = statemachine.StringState("validating")
	StateBuilding           = statemachine.StringState("building")
	StateSending            = statemachine.StringState("sending")
	StateSucceeded          = statemachine.StringState("succeeded")
	StatePartiallySucceeded = statemachine.StringState("partially_succeeded")
	StateFailed             = statemachine.StringState("failed")
)

var (
	eventValidate = statemachine.StringEvent("validate")
	eventBuild    = statemachine.StringEvent("build")
	eventSend     = statemachine.StringEvent("send")
	eventSucceed  = statemachine.StringEvent("succeed")
	eventPartial  = statemachine.StringEvent("partial")
	eventFail     = statemachine.StringEvent("fail")
)

var attemptTransitions = []statemachine.TransitionDef{
	{From: StateIdle, To: StateValidating, Event: eventValidate},
	{From: StateValidating, To: StateBuilding, Event: eventBuild},
	{From: StateBuilding, To: StateSending, Event: eventSend},
	{From: StateSending, To: StateSucceeded, Event: eventSucceed},
	{From: StateSending, To: StatePartiallySucceeded, Event: eventPartial},
	{From: StateValidating, To: StateFailed, Event: eventFail},
	{From: StateBuilding, To: StateFailed, Event: eventFail},
	{From: StateSending, To: StateFailed, Event: eventFail},
}

// attempt tracks one run of a dispatcher operation.
type attempt struct {
	id  string
	op  string
	sm  statemachine.StateMachine
	log *slog.Logger
}

func newAttempt(id, op string, log *slog.Logger) *attempt {
	a := &attempt{id: id, op: op, log: log}
	a.sm = statemachine.MustNew(StateIdle,
		statemachine.WithTransitions(attemptTransitions),
		statemachine.WithTerminal(StateSucceeded, StatePartiallySucceeded, StateFailed),
		statemachine.WithObserver(a.observe),
	)
	return a
}

func (a *attempt) observe(ctx context.Context, from, to statemachine.State, event statemachine.Event) {
	a.log.LogAttrs(ctx, slog.LevelDebug, "attempt state changed",
		logger.AttemptID(a.id),
		slog.String("operation", a.op),
		slog.String("from", from.Name()),
		logger.State(to.Name()),
		slog.String("event", event.Name()),
	)
}

// step fires ev. The transition table covers every path the dispatcher takes,
// so a rejection here is a bug and is only logged.
func (a *attempt) step(ctx context.Context, ev statemachine.Event) {
	if err := a.sm.Fire(ctx, ev); err != nil {
		a.log.LogAttrs(ctx, slog.LevelError, "attempt transition rejected",
			logger.AttemptID(a.id),
			slog.String("operation", a.op),
			logger.State(a.sm.Current().Name()),
			slog.String("event", ev.Name()),
			logger.Error(err),
		)
	}
}

// fail moves the attempt to Failed and returns err unchanged.
func (a *attempt) fail(ctx context.Context, err error) error {
	a.step(ctx, eventFail)
	a.log.LogAttrs(ctx, slog.LevelWarn, "attempt failed",
		logger.AttemptID(a.id),
		slog.String("operation", a.op),
		logger.Error(err),
	)
	return err
}

func (a *attempt) state() statemachine.State {
	return a.sm.Current()
}

func (a *attempt) trail() []statemachine.State {
	return a.sm.Trail()
}
