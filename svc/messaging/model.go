package messaging

import "strings"

// Contact is a person known to the Directory Service.
// A contact without email and phone may exist but can never be a recipient.
type Contact struct {
	ID         int64  `json:"id,omitempty"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	WhatsappID string `json:"whatsappId,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// HasEmail reports whether the contact has a non-blank email address.
func (c Contact) HasEmail() bool {
	return strings.TrimSpace(c.Email) != ""
}

// HasPhone reports whether the contact has a non-blank phone number.
func (c Contact) HasPhone() bool {
	return strings.TrimSpace(c.Phone) != ""
}

// Category groups contacts. Membership lives in the Directory Service.
type Category struct {
	ID          int64     `json:"id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Parent      *Category `json:"parent,omitempty"`
}

// CategoryRequest creates a category.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ParentID    *int64 `json:"parentId,omitempty"`
}

// Channel is the delivery channel of a message.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelBoth  Channel = "both"
)

// Channels lists every channel in display order.
var Channels = []Channel{ChannelEmail, ChannelSMS, ChannelBoth}

func (c Channel) String() string {
	return string(c)
}

// Draft is a snapshot of the message being composed.
// The engine never mutates it.
type Draft struct {
	Recipient     RecipientSpec
	Channel       Channel
	Subject       string
	Content       string
	Sender        string
	ScheduledTime string
	Attachments   []string
}

// Scheduled reports whether the draft asks for delayed delivery.
func (d Draft) Scheduled() bool {
	return strings.TrimSpace(d.ScheduledTime) != ""
}

// ResolvedRecipient is a contact reduced to what delivery needs.
type ResolvedRecipient struct {
	ContactID int64
	Name      string
	Email     string
	Phone     string
}

func (r ResolvedRecipient) HasEmail() bool {
	return r.Email != ""
}

func (r ResolvedRecipient) HasPhone() bool {
	return r.Phone != ""
}

func resolve(c Contact) ResolvedRecipient {
	return ResolvedRecipient{
		ContactID: c.ID,
		Name:      c.Name,
		Email:     strings.TrimSpace(c.Email),
		Phone:     strings.TrimSpace(c.Phone),
	}
}
