package directory

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/pkg/restclient"
	"github.com/dmitrymomot/notifykit/svc/messaging"
)

// Client talks to the Directory Service REST API.
// Every error it returns matches messaging.ErrTransportFailure.
type Client struct {
	rc     *restclient.Client
	logger *slog.Logger
}

var _ messaging.Directory = (*Client)(nil)

// Option configures a Client.
type Option func(*options)

type options struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithLogger logs every request at debug level and failures at warn.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New creates a client for cfg.BaseURL.
func New(cfg Config, opts ...Option) (*Client, error) {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	c := &Client{logger: o.logger}
	rc, err := restclient.New(cfg.BaseURL,
		restclient.WithTimeout(cfg.Timeout),
		restclient.WithHTTPClient(o.httpClient),
		restclient.WithUserAgent("notifykit-directory/1.0"),
		restclient.WithOnResponse(c.logResponse),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	c.rc = rc
	return c, nil
}

func (c *Client) logResponse(info restclient.ResponseInfo) {
	level := slog.LevelDebug
	if info.Err != nil {
		level = slog.LevelWarn
	}
	c.logger.LogAttrs(context.Background(), level, "directory request",
		logger.Component("directory"),
		slog.String("method", info.Method),
		slog.String("path", info.Path),
		slog.Int("status", info.StatusCode),
		logger.Duration(info.Duration),
		logger.Error(info.Err),
	)
}

// envelope is the {success, message} wrapper the service puts around writes.
type envelope struct {
	Success  bool                `json:"success"`
	Message  string              `json:"message"`
	Category *messaging.Category `json:"category,omitempty"`
}

func (e envelope) check(op string) error {
	if e.Success {
		return nil
	}
	msg := e.Message
	if msg == "" {
		msg = "no reason given"
	}
	return fmt.Errorf("%w: %w: %s: %s", messaging.ErrTransportFailure, ErrRejected, op, msg)
}

func (c *Client) ListContacts(ctx context.Context) ([]messaging.Contact, error) {
	var out []messaging.Contact
	if err := c.rc.Get(ctx, "/contacts", &out); err != nil {
		return nil, wrap("list contacts", err)
	}
	return out, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]messaging.Category, error) {
	var out []messaging.Category
	if err := c.rc.Get(ctx, "/categories", &out); err != nil {
		return nil, wrap("list categories", err)
	}
	return out, nil
}

func (c *Client) ListContactsInCategory(ctx context.Context, categoryID int64) ([]messaging.Contact, error) {
	var out []messaging.Contact
	if err := c.rc.Get(ctx, "/contacts/category/"+id(categoryID), &out); err != nil {
		return nil, wrap("list contacts in category", err)
	}
	return out, nil
}

func (c *Client) CreateCategory(ctx context.Context, req messaging.CategoryRequest) (messaging.Category, error) {
	var resp envelope
	if err := c.rc.Post(ctx, "/categories", req, &resp); err != nil {
		return messaging.Category{}, wrap("create category", err)
	}
	if err := resp.check("create category"); err != nil {
		return messaging.Category{}, err
	}
	if resp.Category == nil || resp.Category.ID == 0 {
		return messaging.Category{}, fmt.Errorf("%w: create category: response has no category", messaging.ErrTransportFailure)
	}
	return *resp.Category, nil
}

func (c *Client) AttachContact(ctx context.Context, contactID, categoryID int64) error {
	var resp envelope
	if err := c.rc.Post(ctx, membershipPath(contactID, categoryID), nil, &resp); err != nil {
		return wrap("attach contact", err)
	}
	return resp.check("attach contact")
}

func (c *Client) DetachContact(ctx context.Context, contactID, categoryID int64) error {
	var resp envelope
	if err := c.rc.Delete(ctx, membershipPath(contactID, categoryID), &resp); err != nil {
		return wrap("detach contact", err)
	}
	return resp.check("detach contact")
}

func membershipPath(contactID, categoryID int64) string {
	return "/contacts/" + id(contactID) + "/categories/" + id(categoryID)
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

func wrap(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", messaging.ErrTransportFailure, op, err)
}
