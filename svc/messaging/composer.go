package messaging

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrymomot/notifykit/pkg/validator"
)

const (
	MaxSubjectLength = 200
	MaxContentLength = 2000

	// ScheduleLayout is the form scheduled times are sent in.
	ScheduleLayout = "2006-01-02T15:04:05"
)

// Schedule inputs without a zone are read in the composer's location.
var localScheduleLayouts = []string{ScheduleLayout, "2006-01-02T15:04"}

// Payload is the request handed to the Delivery Backend.
// Which address fields are set depends on Kind.
type Payload struct {
	Kind          RecipientKind `json:"-"`
	Channel       Channel       `json:"channel"`
	To            string        `json:"to,omitempty"`
	Email         string        `json:"email,omitempty"`
	Phone         string        `json:"phone,omitempty"`
	CategoryID    int64         `json:"categoryId,omitempty"`
	Broadcast     bool          `json:"broadcast,omitempty"`
	Recipients    []int64       `json:"recipients,omitempty"`
	Subject       string        `json:"subject,omitempty"`
	Content       string        `json:"content"`
	Sender        string        `json:"sender,omitempty"`
	ScheduledTime string        `json:"scheduledTime,omitempty"`
	Attachments   []string      `json:"attachments,omitempty"`
}

func (p Payload) Scheduled() bool {
	return p.ScheduledTime != ""
}

// Composer validates drafts and builds payloads from them.
type Composer struct {
	sender string
	loc    *time.Location
	now    func() time.Time
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) ComposerOption {
	return func(c *Composer) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLocation sets the zone for schedule times written without one.
func WithLocation(loc *time.Location) ComposerOption {
	return func(c *Composer) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithDefaultSender sets the sender used for SMS when the draft has none.
func WithDefaultSender(sender string) ComposerOption {
	return func(c *Composer) {
		c.sender = strings.TrimSpace(sender)
	}
}

// NewComposer creates a new payload composer.
func NewComposer(opts ...ComposerOption) *Composer {
	c := &Composer{
		loc: time.Local,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewComposerFromConfig applies the sender and schedule location from cfg.
func NewComposerFromConfig(cfg Config, opts ...ComposerOption) (*Composer, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	base := []ComposerOption{WithDefaultSender(cfg.SMSSender), WithLocation(loc)}
	return NewComposer(append(base, opts...)...), nil
}

// Validate checks the draft against the rules of its channel.
// The returned error is a validator.ValidationErrors that also matches
// the taxonomy errors (ErrEmptyContent, ErrMissingSubject, ...) with errors.Is.
func (c *Composer) Validate(d Draft) error {
	_, err := c.normalize(d)
	return err
}

type normalized struct {
	subject   string
	sender    string
	scheduled string
}

func (c *Composer) normalize(d Draft) (normalized, error) {
	rule := channelRules[d.Channel]
	n := normalized{
		subject: strings.TrimSpace(d.Subject),
		sender:  strings.TrimSpace(d.Sender),
	}
	if n.sender == "" {
		n.sender = c.sender
	}

	rules := []validator.Rule{
		recipientRequired(d.Recipient).As(ErrMissingRecipient),
		validator.InList("channel", d.Channel, Channels).As(ErrInvalidChannel),
		validator.RequiredString("content", d.Content).As(ErrEmptyContent),
		validator.MaxLenString("content", d.Content, MaxContentLength).As(ErrContentTooLong),
	}
	rules = append(rules, validator.When(rule.requireSubject,
		validator.RequiredString("subject", n.subject).As(ErrMissingSubject),
		validator.MaxLenString("subject", n.subject, MaxSubjectLength).As(ErrSubjectTooLong),
	)...)
	rules = append(rules, validator.When(rule.requireSender,
		validator.RequiredString("sender", n.sender).As(ErrMissingSender),
	)...)

	if d.Scheduled() {
		at, ok := c.parseSchedule(d.ScheduledTime)
		rules = append(rules, validator.Rule{
			Check: func() bool { return ok },
			Error: validator.ValidationError{
				Field:          "scheduledTime",
				Message:        "must be a valid date and time",
				TranslationKey: "validation.datetime",
			},
		}.As(ErrInvalidSchedule))
		if ok {
			rules = append(rules, validator.DateAfter("scheduledTime", at, c.now()).As(ErrInvalidSchedule))
			n.scheduled = at.In(c.loc).Format(ScheduleLayout)
		}
	}

	if err := validator.Apply(rules...); err != nil {
		return normalized{}, err
	}
	return n, nil
}

func recipientRequired(spec RecipientSpec) validator.Rule {
	return validator.Rule{
		Check: func() bool { return spec != nil },
		Error: validator.ValidationError{
			Field:          "recipient",
			Message:        "field is required",
			TranslationKey: "validation.required",
		},
	}
}

func (c *Composer) parseSchedule(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	for _, layout := range localScheduleLayouts {
		if t, err := time.ParseInLocation(layout, raw, c.loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Build validates d and shapes the payload for its recipient kind.
// plan must come from PlanChannels for the same draft. Category payloads keep
// the requested channel since the backend resolves the members itself; other
// kinds use the plan's effective channel.
func (c *Composer) Build(d Draft, plan ChannelPlan) (Payload, error) {
	n, err := c.normalize(d)
	if err != nil {
		return Payload{}, err
	}
	if plan.Eligible() == 0 {
		return Payload{}, fmt.Errorf("%w: no eligible recipients", ErrChannelUnavailable)
	}

	ch := plan.Effective()
	if _, ok := d.Recipient.(CategorySpec); ok {
		ch = d.Channel
	}
	p := Payload{
		Kind:          d.Recipient.Kind(),
		Channel:       ch,
		Content:       d.Content,
		ScheduledTime: n.scheduled,
		Attachments:   d.Attachments,
	}
	if ch.IncludesEmail() {
		p.Subject = n.subject
	}
	if ch.IncludesSMS() {
		p.Sender = n.sender
	}

	switch s := d.Recipient.(type) {
	case IndividualSpec:
		r := plan.Recipients[0]
		switch ch {
		case ChannelEmail:
			p.To = r.Email
		case ChannelSMS:
			p.To = r.Phone
		case ChannelBoth:
			p.To = r.Email
			p.Email = r.Email
			p.Phone = r.Phone
		}
	case CategorySpec:
		p.CategoryID = s.CategoryID
	case MultipleSpec:
		p.Broadcast = true
		p.Recipients = make([]int64, 0, len(plan.Recipients))
		for _, r := range plan.Recipients {
			p.Recipients = append(p.Recipients, r.ContactID)
		}
	default:
		return Payload{}, fmt.Errorf("%w: %s", ErrUnsupportedRecipientKind, d.Recipient.Kind())
	}
	return p, nil
}
