package messaging

import (
	"context"
	"fmt"
)

// Resolution is the concrete recipient set for a RecipientSpec.
// Unknown holds ids the caller selected that the catalog does not know.
type Resolution struct {
	Kind       RecipientKind
	Recipients []ResolvedRecipient
	Unknown    []int64
}

// Resolver turns recipient specs into recipients using a Catalog.
type Resolver struct {
	catalog *Catalog
}

// NewResolver creates a new recipient resolver backed by the catalog.
func NewResolver(catalog *Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// Resolve returns an ordered, duplicate-free recipient set.
// The result depends only on the recipient spec and the catalog snapshot
// (and, for categories, on the membership returned by the Directory Service).
func (r *Resolver) Resolve(ctx context.Context, spec RecipientSpec) (Resolution, error) {
	switch s := spec.(type) {
	case IndividualSpec:
		ct, ok := r.catalog.FindContact(s.ContactID)
		if !ok {
			return Resolution{}, fmt.Errorf("%w: contact %d", ErrRecipientNotFound, s.ContactID)
		}
		return Resolution{Kind: KindIndividual, Recipients: []ResolvedRecipient{resolve(ct)}}, nil

	case CategorySpec:
		members, err := r.catalog.ContactsIn(ctx, s.CategoryID)
		if err != nil {
			return Resolution{}, err
		}
		return Resolution{Kind: KindCategory, Recipients: dedupe(members)}, nil

	case MultipleSpec:
		if len(s.ContactIDs) == 0 {
			return Resolution{}, fmt.Errorf("%w: %w", ErrNoValidRecipients, ErrMissingRecipient)
		}
		res := Resolution{Kind: KindMultiple, Recipients: make([]ResolvedRecipient, 0, len(s.ContactIDs))}
		seen := make(map[int64]bool, len(s.ContactIDs))
		for _, id := range s.ContactIDs {
			if seen[id] {
				continue
			}
			seen[id] = true
			ct, ok := r.catalog.FindContact(id)
			if !ok {
				res.Unknown = append(res.Unknown, id)
				continue
			}
			res.Recipients = append(res.Recipients, resolve(ct))
		}
		if len(res.Recipients) == 0 {
			return res, fmt.Errorf("%w: %v", ErrNoValidRecipients, res.Unknown)
		}
		return res, nil

	case AllSpec:
		return Resolution{Kind: KindAll, Recipients: dedupe(r.catalog.Contacts())}, nil

	case nil:
		return Resolution{}, ErrMissingRecipient
	}
	return Resolution{}, fmt.Errorf("%w: %T", ErrUnsupportedRecipientKind, spec)
}

func dedupe(contacts []Contact) []ResolvedRecipient {
	out := make([]ResolvedRecipient, 0, len(contacts))
	seen := make(map[int64]bool, len(contacts))
	for _, ct := range contacts {
		if ct.ID != 0 {
			if seen[ct.ID] {
				continue
			}
			seen[ct.ID] = true
		}
		out = append(out, resolve(ct))
	}
	return out
}
