package delivery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/pkg/restclient"
	"github.com/dmitrymomot/notifykit/svc/messaging"
)

// HTTPBackend sends payloads to the Delivery Backend REST API.
type HTTPBackend struct {
	rc     *restclient.Client
	logger *slog.Logger
}

var _ messaging.Backend = (*HTTPBackend)(nil)

// Option configures an HTTPBackend.
type Option func(*httpOptions)

type httpOptions struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *httpOptions) {
		o.httpClient = c
	}
}

// WithLogger sets the logger for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *httpOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

func NewHTTPBackend(cfg Config, opts ...Option) (*HTTPBackend, error) {
	o := &httpOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	b := &HTTPBackend{logger: o.logger}
	rc, err := restclient.New(cfg.BaseURL,
		restclient.WithTimeout(cfg.Timeout),
		restclient.WithHTTPClient(o.httpClient),
		restclient.WithUserAgent("notifykit-delivery/1.0"),
		restclient.WithOnResponse(b.logResponse),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	b.rc = rc
	return b, nil
}

func (b *HTTPBackend) logResponse(info restclient.ResponseInfo) {
	level := slog.LevelDebug
	if info.Err != nil {
		level = slog.LevelWarn
	}
	b.logger.LogAttrs(context.Background(), level, "delivery request",
		logger.Component("delivery"),
		slog.String("method", info.Method),
		slog.String("path", info.Path),
		slog.Int("status", info.StatusCode),
		logger.Duration(info.Duration),
		logger.Error(info.Err),
	)
}

// categoryMessage is the body of the category broadcast route.
type categoryMessage struct {
	Subject   string `json:"subject,omitempty"`
	Content   string `json:"content"`
	SendEmail bool   `json:"sendEmail"`
	SendSMS   bool   `json:"sendSms"`
}

// Send posts an immediate message. Category payloads use the category
// broadcast route; everything else goes to the unified send route.
func (b *HTTPBackend) Send(ctx context.Context, p messaging.Payload) (messaging.Receipt, error) {
	if p.Kind == messaging.KindCategory {
		body := categoryMessage{
			Subject:   p.Subject,
			Content:   p.Content,
			SendEmail: p.Channel.IncludesEmail(),
			SendSMS:   p.Channel.IncludesSMS(),
		}
		path := "/categories/" + strconv.FormatInt(p.CategoryID, 10) + "/send-message"
		return b.post(ctx, path, body)
	}
	return b.post(ctx, "/messaging/send", p)
}

// Schedule posts a message for delayed delivery.
func (b *HTTPBackend) Schedule(ctx context.Context, p messaging.Payload) (messaging.Receipt, error) {
	if !p.Scheduled() {
		return messaging.Receipt{}, fmt.Errorf("%w: schedule without a scheduled time", ErrUnsupportedPayload)
	}
	return b.post(ctx, "/messaging/schedule", p)
}

func (b *HTTPBackend) post(ctx context.Context, path string, body any) (messaging.Receipt, error) {
	var r messaging.Receipt
	if err := b.rc.Post(ctx, path, body, &r); err != nil {
		return r, fmt.Errorf("%w: %w", messaging.ErrTransportFailure, err)
	}
	return r, nil
}

// Message states reported by the backend.
const (
	StatusQueued     = "QUEUED"
	StatusProcessing = "PROCESSING"
	StatusSent       = "SENT"
	StatusDelivered  = "DELIVERED"
	StatusFailed     = "FAILED"
	StatusScheduled  = "SCHEDULED"
	StatusCancelled  = "CANCELLED"
)

// MessageStatus is the tracked state of a sent or scheduled message.
type MessageStatus struct {
	MessageID     string `json:"messageId" yaml:"messageId"`
	Status        string `json:"status" yaml:"status"`
	StatusDisplay string `json:"statusDisplay,omitempty" yaml:"statusDisplay,omitempty"`
	Recipient     string `json:"recipient,omitempty" yaml:"recipient,omitempty"`
	Type          string `json:"type,omitempty" yaml:"type,omitempty"`
	Subject       string `json:"subject,omitempty" yaml:"subject,omitempty"`
	Timestamp     string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	ErrorMessage  string `json:"errorMessage,omitempty" yaml:"errorMessage,omitempty"`
	CanRetry      bool   `json:"canRetry,omitempty" yaml:"canRetry,omitempty"`
}

// Pending reports whether the message has not reached a final state yet.
func (s MessageStatus) Pending() bool {
	switch s.Status {
	case StatusQueued, StatusProcessing, StatusScheduled:
		return true
	}
	return false
}

// Status looks up a message by the id returned in its receipt.
func (b *HTTPBackend) Status(ctx context.Context, messageID string) (MessageStatus, error) {
	var s MessageStatus
	err := b.rc.Get(ctx, "/messages/"+url.PathEscape(messageID)+"/status", &s)
	if restclient.StatusCode(err) == http.StatusNotFound {
		return s, fmt.Errorf("%w: %s", ErrMessageNotFound, messageID)
	}
	if err != nil {
		return s, fmt.Errorf("%w: %w", messaging.ErrTransportFailure, err)
	}
	return s, nil
}

// IsNotFound reports whether err means the backend does not know the message.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrMessageNotFound)
}
