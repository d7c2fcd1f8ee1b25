// Package messaging turns a message draft into a validated, priced request for
// a Delivery Backend.
//
// A Draft names its recipients with a RecipientSpec (one contact, a category,
// a hand-picked list, or everyone), a Channel (email, sms or both) and the
// content. Dispatcher.Dispatch runs each draft through a small state machine:
//
//	idle -> validating -> building -> sending -> succeeded | partially_succeeded | failed
//
// Validating checks the draft against the rules of its channel, resolves the
// recipients against the Catalog, partitions them by channel with PlanChannels
// and prices the send with a CostTable. Building shapes the Payload for the
// recipient kind. Sending calls the Backend exactly once. Every failure before
// sending happens before any write to a remote system.
//
// Recipients that cannot receive the requested channel are not dropped
// silently: they are listed in ChannelPlan.Excluded, and ids the catalog does
// not know are listed in Resolution.Unknown.
//
// CreateCategoryWithContacts and ReconcileMembers change category membership
// through the Directory. Each contact is attached or detached by its own
// concurrent call and the flow waits for all of them before reporting.
//
// Errors are classified with errors.Is against the package sentinels, e.g.
//
//	res, err := d.Dispatch(ctx, draft)
//	switch {
//	case errors.Is(err, messaging.ErrMissingSubject):
//	case errors.Is(err, messaging.ErrChannelUnavailable):
//		for _, ex := range res.Plan.Excluded { ... }
//	case errors.Is(err, messaging.ErrTransportFailure):
//	}
package messaging
