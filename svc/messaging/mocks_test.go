package messaging_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/svc/messaging"
)

// MockDirectory for testing the catalog and membership flows
type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) ListContacts(ctx context.Context) ([]messaging.Contact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]messaging.Contact), args.Error(1)
}

func (m *MockDirectory) ListCategories(ctx context.Context) ([]messaging.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]messaging.Category), args.Error(1)
}

func (m *MockDirectory) ListContactsInCategory(ctx context.Context, categoryID int64) ([]messaging.Contact, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]messaging.Contact), args.Error(1)
}

func (m *MockDirectory) CreateCategory(ctx context.Context, req messaging.CategoryRequest) (messaging.Category, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(messaging.Category), args.Error(1)
}

func (m *MockDirectory) AttachContact(ctx context.Context, contactID, categoryID int64) error {
	args := m.Called(ctx, contactID, categoryID)
	return args.Error(0)
}

func (m *MockDirectory) DetachContact(ctx context.Context, contactID, categoryID int64) error {
	args := m.Called(ctx, contactID, categoryID)
	return args.Error(0)
}

// MockBackend for testing dispatch
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Send(ctx context.Context, p messaging.Payload) (messaging.Receipt, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(messaging.Receipt), args.Error(1)
}

func (m *MockBackend) Schedule(ctx context.Context, p messaging.Payload) (messaging.Receipt, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(messaging.Receipt), args.Error(1)
}

var fixedNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func testContacts() []messaging.Contact {
	return []messaging.Contact{
		{ID: 42, Name: "Ana", Email: "a@b.com"},
		{ID: 7, Name: "Bo", Phone: "+34600000007"},
		{ID: 9, Name: "Cy", Email: "cy@example.com", Phone: "+34600000009"},
		{ID: 11, Name: "Di"},
	}
}

func testCategories() []messaging.Category {
	return []messaging.Category{
		{ID: 1, Name: "Family"},
		{ID: 2, Name: "Work", Description: "colleagues"},
	}
}

func newCatalog(dir messaging.Directory) *messaging.Catalog {
	c := messaging.NewCatalog(dir)
	c.Load(testContacts(), testCategories())
	return c
}

func newComposer() *messaging.Composer {
	return messaging.NewComposer(
		messaging.WithClock(func() time.Time { return fixedNow }),
		messaging.WithLocation(time.UTC),
		messaging.WithDefaultSender("notifykit"),
	)
}

func newDispatcher(t *testing.T, dir messaging.Directory, backend messaging.Backend) *messaging.Dispatcher {
	t.Helper()
	costs, err := messaging.DefaultConfig().CostTable()
	require.NoError(t, err)
	return messaging.NewDispatcher(newCatalog(dir), newComposer(), costs, backend,
		messaging.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		messaging.WithAttemptIDs(func() string { return "attempt-1" }),
	)
}
