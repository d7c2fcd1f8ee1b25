package messaging

import "fmt"

// channelRule describes what a channel delivers on and what a draft must carry for it.
type channelRule struct {
	email          bool
	sms            bool
	requireSubject bool
	requireSender  bool
}

var channelRules = map[Channel]channelRule{
	ChannelEmail: {email: true, requireSubject: true},
	ChannelSMS:   {sms: true, requireSender: true},
	ChannelBoth:  {email: true, sms: true, requireSubject: true, requireSender: true},
}

func (c Channel) Valid() bool {
	_, ok := channelRules[c]
	return ok
}

func (c Channel) IncludesEmail() bool {
	return channelRules[c].email
}

func (c Channel) IncludesSMS() bool {
	return channelRules[c].sms
}

// Exclusion reasons.
const (
	ReasonNoEmail   = "no email"
	ReasonNoPhone   = "no phone"
	ReasonNoAddress = "no email or phone"
)

// Exclusion records a recipient (or one of its sub-channels) that will not be sent to.
type Exclusion struct {
	ContactID int64
	Name      string
	Channel   Channel
	Reason    string
}

// ChannelPlan is a resolution filtered and partitioned by channel.
// Recipients is the union of Email and SMS in resolution order.
type ChannelPlan struct {
	Channel    Channel
	Recipients []ResolvedRecipient
	Email      []ResolvedRecipient
	SMS        []ResolvedRecipient
	Excluded   []Exclusion
}

// Eligible is the number of recipients that will receive at least one sub-channel.
func (p ChannelPlan) Eligible() int {
	return len(p.Recipients)
}

// Effective is the channel actually used. A Both plan with only one usable
// sub-channel collapses to that sub-channel.
func (p ChannelPlan) Effective() Channel {
	if p.Channel != ChannelBoth {
		return p.Channel
	}
	switch {
	case len(p.Email) == 0 && len(p.SMS) > 0:
		return ChannelSMS
	case len(p.SMS) == 0 && len(p.Email) > 0:
		return ChannelEmail
	}
	return ChannelBoth
}

// PlanChannels partitions recipients by the requested channel.
// Every recipient left out is reported in Excluded. The plan fails with
// ErrChannelUnavailable when nobody is left to send to.
func PlanChannels(recipients []ResolvedRecipient, ch Channel) (ChannelPlan, error) {
	rule, ok := channelRules[ch]
	if !ok {
		return ChannelPlan{}, fmt.Errorf("%w: %q", ErrInvalidChannel, ch)
	}

	plan := ChannelPlan{Channel: ch}
	for _, r := range recipients {
		email := rule.email && r.HasEmail()
		sms := rule.sms && r.HasPhone()

		if !email && !sms {
			plan.Excluded = append(plan.Excluded, Exclusion{
				ContactID: r.ContactID,
				Name:      r.Name,
				Channel:   ch,
				Reason:    missingReason(rule),
			})
			continue
		}

		plan.Recipients = append(plan.Recipients, r)
		if email {
			plan.Email = append(plan.Email, r)
		} else if rule.email {
			plan.Excluded = append(plan.Excluded, Exclusion{ContactID: r.ContactID, Name: r.Name, Channel: ChannelEmail, Reason: ReasonNoEmail})
		}
		if sms {
			plan.SMS = append(plan.SMS, r)
		} else if rule.sms {
			plan.Excluded = append(plan.Excluded, Exclusion{ContactID: r.ContactID, Name: r.Name, Channel: ChannelSMS, Reason: ReasonNoPhone})
		}
	}

	if len(plan.Recipients) == 0 {
		return plan, fmt.Errorf("%w: %s (%d excluded)", ErrChannelUnavailable, ch, len(plan.Excluded))
	}
	return plan, nil
}

func missingReason(rule channelRule) string {
	switch {
	case rule.email && rule.sms:
		return ReasonNoAddress
	case rule.email:
		return ReasonNoEmail
	default:
		return ReasonNoPhone
	}
}

// AvailableChannels returns the channels PlanChannels would accept for recipients.
func AvailableChannels(recipients []ResolvedRecipient) []Channel {
	var anyEmail, anyPhone bool
	for _, r := range recipients {
		anyEmail = anyEmail || r.HasEmail()
		anyPhone = anyPhone || r.HasPhone()
	}

	out := make([]Channel, 0, len(Channels))
	for _, ch := range Channels {
		rule := channelRules[ch]
		if (rule.email && anyEmail) || (rule.sms && anyPhone) {
			out = append(out, ch)
		}
	}
	return out
}
