package delivery

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mrz1836/postmark"

	"github.com/dmitrymomot/notifykit/pkg/validator"
	"github.com/dmitrymomot/notifykit/svc/messaging"
)

// PostmarkEmail delivers single-recipient emails straight through Postmark.
// It only accepts immediate individual email payloads.
type PostmarkEmail struct {
	client *postmark.Client
	from   string
}

var _ messaging.Backend = (*PostmarkEmail)(nil)

// PostmarkOption configures a PostmarkEmail.
type PostmarkOption func(*postmark.Client)

// WithPostmarkBaseURL points the client at another API host.
func WithPostmarkBaseURL(u string) PostmarkOption {
	return func(c *postmark.Client) {
		if u != "" {
			c.BaseURL = u
		}
	}
}

// WithPostmarkHTTPClient replaces the http.Client used for API calls.
func WithPostmarkHTTPClient(hc *http.Client) PostmarkOption {
	return func(c *postmark.Client) {
		if hc != nil {
			c.HTTPClient = hc
		}
	}
}

// NewPostmarkEmail requires both tokens and a valid sender address.
func NewPostmarkEmail(cfg Config, opts ...PostmarkOption) (*PostmarkEmail, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: PostmarkServerToken is required", ErrInvalidConfig)
	}
	if cfg.PostmarkAccountToken == "" {
		return nil, fmt.Errorf("%w: PostmarkAccountToken is required", ErrInvalidConfig)
	}
	if err := validator.Apply(validator.ValidEmail("SenderEmail", cfg.SenderEmail)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	client := postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken)
	for _, opt := range opts {
		opt(client)
	}
	return &PostmarkEmail{client: client, from: cfg.SenderEmail}, nil
}

// Accepts reports whether p can be sent by Postmark.
func (e *PostmarkEmail) Accepts(p messaging.Payload) bool {
	return p.Kind == messaging.KindIndividual &&
		p.Channel == messaging.ChannelEmail &&
		p.To != "" &&
		!p.Scheduled()
}

func (e *PostmarkEmail) Send(ctx context.Context, p messaging.Payload) (messaging.Receipt, error) {
	if !e.Accepts(p) {
		return messaging.Receipt{}, fmt.Errorf("%w: postmark sends immediate individual emails only", ErrUnsupportedPayload)
	}

	resp, err := e.client.SendEmail(ctx, postmark.Email{
		From:       e.from,
		To:         p.To,
		Subject:    p.Subject,
		TextBody:   p.Content,
		Tag:        "notifykit",
		TrackOpens: true,
	})
	if err != nil {
		return messaging.Receipt{}, errors.Join(messaging.ErrTransportFailure, ErrEmailRejected, err)
	}
	if resp.ErrorCode > 0 {
		return messaging.Receipt{}, errors.Join(
			messaging.ErrTransportFailure,
			ErrEmailRejected,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return messaging.Receipt{
		Success:         true,
		Message:         resp.Message,
		MessageID:       resp.MessageID,
		TotalRecipients: 1,
		EmailRecipients: 1,
	}, nil
}

// Schedule is not supported; Postmark has no delayed sends.
func (e *PostmarkEmail) Schedule(context.Context, messaging.Payload) (messaging.Receipt, error) {
	return messaging.Receipt{}, fmt.Errorf("%w: postmark cannot schedule", ErrUnsupportedPayload)
}
