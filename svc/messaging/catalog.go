package messaging

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/dmitrymomot/notifykit/pkg/async"
)

// Catalog is a session-scoped cache of contacts and categories.
// Load swaps the whole snapshot; readers never see a half-loaded state.
type Catalog struct {
	dir  Directory
	snap atomic.Pointer[snapshot]
}

type snapshot struct {
	contacts   []Contact
	byID       map[int64]int
	categories []Category
	catByID    map[int64]int
}

// NewCatalog returns an empty catalog that delegates membership lookups to dir.
func NewCatalog(dir Directory) *Catalog {
	c := &Catalog{dir: dir}
	c.snap.Store(&snapshot{})
	return c
}

// Load replaces the cached data. Contacts without an id are skipped;
// for duplicate ids the first occurrence wins.
func (c *Catalog) Load(contacts []Contact, categories []Category) {
	s := &snapshot{
		contacts:   make([]Contact, 0, len(contacts)),
		byID:       make(map[int64]int, len(contacts)),
		categories: make([]Category, 0, len(categories)),
		catByID:    make(map[int64]int, len(categories)),
	}
	for _, ct := range contacts {
		if ct.ID == 0 {
			continue
		}
		if _, dup := s.byID[ct.ID]; dup {
			continue
		}
		s.byID[ct.ID] = len(s.contacts)
		s.contacts = append(s.contacts, ct)
	}
	for _, cat := range categories {
		if cat.ID == 0 {
			continue
		}
		if _, dup := s.catByID[cat.ID]; dup {
			continue
		}
		s.catByID[cat.ID] = len(s.categories)
		s.categories = append(s.categories, cat)
	}
	c.snap.Store(s)
}

// Refresh fetches contacts and categories concurrently and loads them.
// On error the previous snapshot is kept.
func (c *Catalog) Refresh(ctx context.Context) error {
	contacts := async.Async(ctx, struct{}{}, func(ctx context.Context, _ struct{}) ([]Contact, error) {
		return c.dir.ListContacts(ctx)
	})
	categories := async.Async(ctx, struct{}{}, func(ctx context.Context, _ struct{}) ([]Category, error) {
		return c.dir.ListCategories(ctx)
	})

	cts, cerr := contacts.Await()
	cats, gerr := categories.Await()
	if cerr != nil {
		return fmt.Errorf("%w: list contacts: %w", ErrTransportFailure, cerr)
	}
	if gerr != nil {
		return fmt.Errorf("%w: list categories: %w", ErrTransportFailure, gerr)
	}

	c.Load(cts, cats)
	return nil
}

// FindContact looks up a contact by id.
func (c *Catalog) FindContact(id int64) (Contact, bool) {
	s := c.snap.Load()
	i, ok := s.byID[id]
	if !ok {
		return Contact{}, false
	}
	return s.contacts[i], true
}

// Category looks up a category by id.
func (c *Catalog) Category(id int64) (Category, bool) {
	s := c.snap.Load()
	i, ok := s.catByID[id]
	if !ok {
		return Category{}, false
	}
	return s.categories[i], true
}

// Contacts returns the cached contacts in load order.
func (c *Catalog) Contacts() []Contact {
	s := c.snap.Load()
	out := make([]Contact, len(s.contacts))
	copy(out, s.contacts)
	return out
}

// Categories returns the cached categories in load order.
func (c *Catalog) Categories() []Category {
	s := c.snap.Load()
	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// ContactsIn asks the Directory Service for the current members of a category.
// Membership is never cached.
func (c *Catalog) ContactsIn(ctx context.Context, categoryID int64) ([]Contact, error) {
	members, err := c.dir.ListContactsInCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: list contacts in category %d: %w", ErrTransportFailure, categoryID, err)
	}
	return members, nil
}
