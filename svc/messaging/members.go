package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/dmitrymomot/notifykit/pkg/async"
	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/pkg/statemachine"
	"github.com/dmitrymomot/notifykit/pkg/validator"
)

// MemberOp is a change to category membership.
type MemberOp string

const (
	OpAttach MemberOp = "attach"
	OpDetach MemberOp = "detach"
)

// MemberFailure is one membership change the Directory Service refused.
type MemberFailure struct {
	ContactID int64
	Op        MemberOp
	Err       error
}

// MembershipResult reports a membership flow.
// Completed and Failed count membership calls; Unchanged counts
// selected contacts that were already members.
type MembershipResult struct {
	AttemptID string
	State     statemachine.State
	Trail     []statemachine.State
	Category  Category
	Attached  []int64
	Detached  []int64
	Unchanged int
	Completed int
	Failed    int
	Failures  []MemberFailure
}

type memberChange struct {
	contactID int64
	op        MemberOp
}

// CreateCategoryWithContacts creates a category and then attaches every selected
// contact concurrently. All attachments are awaited; none is retried and the
// category is kept whatever happens to them.
//
// The final state is Succeeded when every attachment worked, PartiallySucceeded
// when some did and Failed when none did. Attachment failures are reported as
// ErrPartialAttachmentFailure joined with each underlying error.
func (d *Dispatcher) CreateCategoryWithContacts(ctx context.Context, req CategoryRequest, contactIDs []int64) (MembershipResult, error) {
	ctx, a := d.begin(ctx, "create_category")
	res := MembershipResult{AttemptID: a.id}
	a.step(ctx, eventValidate)

	if err := validator.Apply(
		validator.RequiredString("name", req.Name),
		validator.MaxLenString("name", req.Name, 100),
	); err != nil {
		return res.failed(ctx, a, err)
	}

	a.step(ctx, eventBuild)
	changes := make([]memberChange, 0, len(contactIDs))
	for _, id := range uniqueIDs(contactIDs) {
		changes = append(changes, memberChange{contactID: id, op: OpAttach})
	}

	a.step(ctx, eventSend)
	cat, err := d.catalog.dir.CreateCategory(ctx, req)
	if err != nil {
		return res.failed(ctx, a, transportErr(err))
	}
	res.Category = cat
	d.logger.LogAttrs(ctx, slog.LevelInfo, "category created",
		logger.AttemptID(a.id), logger.CategoryID(cat.ID), logger.Count("contacts", len(changes)))

	return d.applyChanges(ctx, a, res, changes)
}

// ReconcileMembers makes the membership of a category equal to selected:
// missing contacts are attached and contacts no longer selected are detached,
// all concurrently. Running it again with the same selection changes nothing.
func (d *Dispatcher) ReconcileMembers(ctx context.Context, categoryID int64, selected []int64) (MembershipResult, error) {
	ctx, a := d.begin(ctx, "reconcile_members")
	res := MembershipResult{AttemptID: a.id}
	if cat, ok := d.catalog.Category(categoryID); ok {
		res.Category = cat
	} else {
		res.Category = Category{ID: categoryID}
	}
	a.step(ctx, eventValidate)

	members, err := d.catalog.ContactsIn(ctx, categoryID)
	if err != nil {
		return res.failed(ctx, a, err)
	}

	a.step(ctx, eventBuild)
	current := make(map[int64]bool, len(members))
	for _, m := range members {
		current[m.ID] = true
	}
	want := uniqueIDs(selected)
	wanted := make(map[int64]bool, len(want))

	var changes []memberChange
	for _, id := range want {
		wanted[id] = true
		if current[id] {
			res.Unchanged++
			continue
		}
		changes = append(changes, memberChange{contactID: id, op: OpAttach})
	}
	for _, m := range members {
		if m.ID != 0 && !wanted[m.ID] {
			changes = append(changes, memberChange{contactID: m.ID, op: OpDetach})
			wanted[m.ID] = true
		}
	}

	a.step(ctx, eventSend)
	return d.applyChanges(ctx, a, res, changes)
}

// applyChanges issues every change concurrently, waits for all of them and
// moves the attempt to its final state.
func (d *Dispatcher) applyChanges(ctx context.Context, a *attempt, res MembershipResult, changes []memberChange) (MembershipResult, error) {
	categoryID := res.Category.ID
	outcomes := async.ForEach(ctx, changes, func(ctx context.Context, ch memberChange) (memberChange, error) {
		var err error
		if ch.op == OpAttach {
			err = d.catalog.dir.AttachContact(ctx, ch.contactID, categoryID)
		} else {
			err = d.catalog.dir.DetachContact(ctx, ch.contactID, categoryID)
		}
		if err != nil {
			return ch, transportErr(err)
		}
		return ch, nil
	})

	res.Completed, res.Failed = async.Tally(outcomes)
	errs := make([]error, 0, res.Failed)
	for i, o := range outcomes {
		ch := changes[i]
		if !o.OK() {
			res.Failures = append(res.Failures, MemberFailure{ContactID: ch.contactID, Op: ch.op, Err: o.Err})
			errs = append(errs, fmt.Errorf("%s contact %d: %w", ch.op, ch.contactID, o.Err))
			continue
		}
		if ch.op == OpAttach {
			res.Attached = append(res.Attached, ch.contactID)
		} else {
			res.Detached = append(res.Detached, ch.contactID)
		}
	}

	log := []slog.Attr{
		logger.AttemptID(a.id),
		logger.CategoryID(categoryID),
		logger.Count("completed", res.Completed),
		logger.Count("failed", res.Failed),
	}

	if res.Failed == 0 {
		a.step(ctx, eventSucceed)
		d.logger.LogAttrs(ctx, slog.LevelInfo, "category membership updated", log...)
		return res.finish(a), nil
	}

	err := errors.Join(append([]error{
		fmt.Errorf("%w: %d of %d changes applied", ErrPartialAttachmentFailure, res.Completed, len(changes)),
	}, errs...)...)

	if res.Completed > 0 {
		a.step(ctx, eventPartial)
		d.logger.LogAttrs(ctx, slog.LevelWarn, "category membership partially updated", append(log, logger.Error(err))...)
		return res.finish(a), err
	}
	return res.failed(ctx, a, err)
}

func (r MembershipResult) finish(a *attempt) MembershipResult {
	r.State = a.state()
	r.Trail = a.trail()
	return r
}

func (r MembershipResult) failed(ctx context.Context, a *attempt, err error) (MembershipResult, error) {
	err = a.fail(ctx, err)
	return r.finish(a), err
}

// uniqueIDs drops zero and repeated ids, keeping first-seen order.
func uniqueIDs(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id == 0 || slices.Contains(out, id) {
			continue
		}
		out = append(out, id)
	}
	return out
}
