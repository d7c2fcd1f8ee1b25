package messaging

import "context"

// Directory is the remote store of contacts and categories.
type Directory interface {
	ListContacts(ctx context.Context) ([]Contact, error)
	ListCategories(ctx context.Context) ([]Category, error)
	ListContactsInCategory(ctx context.Context, categoryID int64) ([]Contact, error)
	CreateCategory(ctx context.Context, req CategoryRequest) (Category, error)
	AttachContact(ctx context.Context, contactID, categoryID int64) error
	DetachContact(ctx context.Context, contactID, categoryID int64) error
}

// Backend delivers prepared payloads.
type Backend interface {
	Send(ctx context.Context, p Payload) (Receipt, error)
	Schedule(ctx context.Context, p Payload) (Receipt, error)
}

// Receipt is the Delivery Backend's answer to a send or schedule call.
type Receipt struct {
	Success         bool   `json:"success" yaml:"success"`
	Message         string `json:"message,omitempty" yaml:"message,omitempty"`
	MessageID       string `json:"messageId,omitempty" yaml:"messageId,omitempty"`
	TotalRecipients int    `json:"totalRecipients,omitempty" yaml:"totalRecipients,omitempty"`
	EmailRecipients int    `json:"emailRecipients,omitempty" yaml:"emailRecipients,omitempty"`
	SMSRecipients   int    `json:"smsRecipients,omitempty" yaml:"smsRecipients,omitempty"`
	ScheduledTime   string `json:"scheduledTime,omitempty" yaml:"scheduledTime,omitempty"`
}
