package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/pkg/requestid"
	"github.com/dmitrymomot/notifykit/pkg/statemachine"
)

// Result reports a send attempt. Fields are filled as far as the attempt got.
type Result struct {
	AttemptID  string
	State      statemachine.State
	Trail      []statemachine.State
	Resolution Resolution
	Plan       ChannelPlan
	Estimate   Estimate
	Payload    Payload
	Receipt    Receipt
}

// Dispatcher runs send attempts and category membership flows.
// It keeps no state between calls besides the catalog it was given.
type Dispatcher struct {
	catalog  *Catalog
	resolver *Resolver
	composer *Composer
	costs    CostTable
	backend  Backend
	logger   *slog.Logger
	newID    func() string
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the logger for the Dispatcher.
func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithAttemptIDs replaces the attempt ID generator.
func WithAttemptIDs(gen func() string) DispatcherOption {
	return func(d *Dispatcher) {
		if gen != nil {
			d.newID = gen
		}
	}
}

// NewDispatcher creates a new dispatcher that sends composed payloads through backend.
func NewDispatcher(catalog *Catalog, composer *Composer, costs CostTable, backend Backend, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		catalog:  catalog,
		resolver: NewResolver(catalog),
		composer: composer,
		costs:    costs,
		backend:  backend,
		logger:   slog.Default(),
		newID:    requestid.New,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dispatcher) begin(ctx context.Context, op string) (context.Context, *attempt) {
	id := requestid.FromContext(ctx)
	if id == "" {
		id = d.newID()
		ctx = requestid.WithContext(ctx, id)
	}
	return ctx, newAttempt(id, op, d.logger)
}

// Dispatch validates the draft, resolves and plans its recipients, builds the
// payload and hands it to the backend once. Drafts with a schedule time go
// through Backend.Schedule.
func (d *Dispatcher) Dispatch(ctx context.Context, draft Draft) (Result, error) {
	ctx, a := d.begin(ctx, "dispatch")
	res, err := d.prepare(ctx, a, draft)
	if err != nil {
		return res.finish(a), err
	}

	a.step(ctx, eventSend)
	send := d.backend.Send
	if res.Payload.Scheduled() {
		send = d.backend.Schedule
	}
	receipt, err := send(ctx, res.Payload)
	res.Receipt = receipt
	if err != nil {
		return res.failed(ctx, a, transportErr(err))
	}
	if !receipt.Success {
		return res.failed(ctx, a, fmt.Errorf("%w: backend rejected the message: %s", ErrTransportFailure, receipt.Message))
	}

	a.step(ctx, eventSucceed)
	d.logger.LogAttrs(ctx, slog.LevelInfo, "message dispatched",
		logger.AttemptID(a.id),
		logger.MessageID(receipt.MessageID),
		logger.RecipientKind(res.Payload.Kind.String()),
		logger.Channel(res.Payload.Channel.String()),
		logger.Count("recipients", res.Plan.Eligible()),
	)
	return res.finish(a), nil
}

// Preview runs validation and payload building without contacting the backend.
// On success the attempt is left in the Building state.
func (d *Dispatcher) Preview(ctx context.Context, draft Draft) (Result, error) {
	ctx, a := d.begin(ctx, "preview")
	res, err := d.prepare(ctx, a, draft)
	return res.finish(a), err
}

func (d *Dispatcher) prepare(ctx context.Context, a *attempt, draft Draft) (Result, error) {
	res := Result{AttemptID: a.id}
	a.step(ctx, eventValidate)

	if err := d.composer.Validate(draft); err != nil {
		return res, a.fail(ctx, err)
	}

	resolution, err := d.resolver.Resolve(ctx, draft.Recipient)
	res.Resolution = resolution
	if err != nil {
		return res, a.fail(ctx, err)
	}
	for _, id := range resolution.Unknown {
		d.logger.LogAttrs(ctx, slog.LevelInfo, "selected contact not found",
			logger.AttemptID(a.id), logger.ContactID(id))
	}

	plan, err := PlanChannels(resolution.Recipients, draft.Channel)
	res.Plan = plan
	for _, ex := range plan.Excluded {
		d.logger.LogAttrs(ctx, slog.LevelInfo, "recipient excluded",
			logger.AttemptID(a.id),
			logger.ContactID(ex.ContactID),
			logger.Channel(ex.Channel.String()),
			slog.String("reason", ex.Reason),
		)
	}
	if err != nil {
		return res, a.fail(ctx, err)
	}
	res.Estimate = d.costs.Estimate(plan.Effective(), plan.Eligible())

	a.step(ctx, eventBuild)
	payload, err := d.composer.Build(draft, plan)
	if err != nil {
		return res, a.fail(ctx, err)
	}
	res.Payload = payload
	return res, nil
}

func (r Result) finish(a *attempt) Result {
	r.State = a.state()
	r.Trail = a.trail()
	return r
}

func (r Result) failed(ctx context.Context, a *attempt, err error) (Result, error) {
	err = a.fail(ctx, err)
	return r.finish(a), err
}

func transportErr(err error) error {
	if errors.Is(err, ErrTransportFailure) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrTransportFailure, err)
}
