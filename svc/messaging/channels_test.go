package messaging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/svc/messaging"
)

var (
	emailOnly = messaging.ResolvedRecipient{ContactID: 1, Name: "email", Email: "e@x.com"}
	phoneOnly = messaging.ResolvedRecipient{ContactID: 2, Name: "phone", Phone: "+100"}
	both      = messaging.ResolvedRecipient{ContactID: 3, Name: "both", Email: "b@x.com", Phone: "+300"}
	neither   = messaging.ResolvedRecipient{ContactID: 4, Name: "neither"}
)

func TestChannel(t *testing.T) {
	t.Parallel()

	assert.True(t, messaging.ChannelEmail.IncludesEmail())
	assert.False(t, messaging.ChannelEmail.IncludesSMS())
	assert.True(t, messaging.ChannelSMS.IncludesSMS())
	assert.True(t, messaging.ChannelBoth.IncludesEmail())
	assert.True(t, messaging.ChannelBoth.IncludesSMS())
	assert.False(t, messaging.Channel("fax").Valid())
	assert.False(t, messaging.Channel("").IncludesEmail())
}

func TestPlanChannels_SingleRecipient(t *testing.T) {
	t.Parallel()

	t.Run("email without address is fatal", func(t *testing.T) {
		t.Parallel()
		plan, err := messaging.PlanChannels([]messaging.ResolvedRecipient{phoneOnly}, messaging.ChannelEmail)
		require.ErrorIs(t, err, messaging.ErrChannelUnavailable)
		require.Len(t, plan.Excluded, 1)
		assert.Equal(t, messaging.ReasonNoEmail, plan.Excluded[0].Reason)
	})

	t.Run("sms without phone is fatal", func(t *testing.T) {
		t.Parallel()
		_, err := messaging.PlanChannels([]messaging.ResolvedRecipient{emailOnly}, messaging.ChannelSMS)
		assert.ErrorIs(t, err, messaging.ErrChannelUnavailable)
	})

	t.Run("both with phone only falls back to sms", func(t *testing.T) {
		t.Parallel()
		plan, err := messaging.PlanChannels([]messaging.ResolvedRecipient{phoneOnly}, messaging.ChannelBoth)
		require.NoError(t, err)
		assert.Empty(t, plan.Email)
		assert.Equal(t, []messaging.ResolvedRecipient{phoneOnly}, plan.SMS)
		assert.Equal(t, []messaging.Exclusion{{
			ContactID: 2, Name: "phone", Channel: messaging.ChannelEmail, Reason: messaging.ReasonNoEmail,
		}}, plan.Excluded)
		assert.Equal(t, messaging.ChannelSMS, plan.Effective())
		assert.Equal(t, 1, plan.Eligible())
	})

	t.Run("both with email only falls back to email", func(t *testing.T) {
		t.Parallel()
		plan, err := messaging.PlanChannels([]messaging.ResolvedRecipient{emailOnly}, messaging.ChannelBoth)
		require.NoError(t, err)
		assert.Equal(t, messaging.ChannelEmail, plan.Effective())
		require.Len(t, plan.Excluded, 1)
		assert.Equal(t, messaging.ReasonNoPhone, plan.Excluded[0].Reason)
	})

	t.Run("contact without addresses", func(t *testing.T) {
		t.Parallel()
		for _, ch := range messaging.Channels {
			_, err := messaging.PlanChannels([]messaging.ResolvedRecipient{neither}, ch)
			assert.ErrorIs(t, err, messaging.ErrChannelUnavailable, ch)
		}
	})
}

func TestPlanChannels_Group(t *testing.T) {
	t.Parallel()
	group := []messaging.ResolvedRecipient{emailOnly, phoneOnly, both, neither}

	t.Run("email filters", func(t *testing.T) {
		t.Parallel()
		plan, err := messaging.PlanChannels(group, messaging.ChannelEmail)
		require.NoError(t, err)
		assert.Equal(t, []messaging.ResolvedRecipient{emailOnly, both}, plan.Email)
		assert.Empty(t, plan.SMS)
		assert.Equal(t, 2, plan.Eligible())
		assert.Len(t, plan.Excluded, 2)
		for _, ex := range plan.Excluded {
			assert.Equal(t, messaging.ReasonNoEmail, ex.Reason)
		}
	})

	t.Run("both partitions", func(t *testing.T) {
		t.Parallel()
		plan, err := messaging.PlanChannels(group, messaging.ChannelBoth)
		require.NoError(t, err)
		assert.Equal(t, []messaging.ResolvedRecipient{emailOnly, both}, plan.Email)
		assert.Equal(t, []messaging.ResolvedRecipient{phoneOnly, both}, plan.SMS)
		assert.Equal(t, []messaging.ResolvedRecipient{emailOnly, phoneOnly, both}, plan.Recipients)
		assert.Equal(t, messaging.ChannelBoth, plan.Effective())
		assert.Equal(t, []messaging.Exclusion{
			{ContactID: 1, Name: "email", Channel: messaging.ChannelSMS, Reason: messaging.ReasonNoPhone},
			{ContactID: 2, Name: "phone", Channel: messaging.ChannelEmail, Reason: messaging.ReasonNoEmail},
			{ContactID: 4, Name: "neither", Channel: messaging.ChannelBoth, Reason: messaging.ReasonNoAddress},
		}, plan.Excluded)
	})

	t.Run("empty set is unavailable", func(t *testing.T) {
		t.Parallel()
		_, err := messaging.PlanChannels(nil, messaging.ChannelBoth)
		assert.ErrorIs(t, err, messaging.ErrChannelUnavailable)
	})

	t.Run("unknown channel", func(t *testing.T) {
		t.Parallel()
		_, err := messaging.PlanChannels(group, "pigeon")
		assert.ErrorIs(t, err, messaging.ErrInvalidChannel)
	})
}

func TestAvailableChannels(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []messaging.Channel{messaging.ChannelEmail, messaging.ChannelBoth},
		messaging.AvailableChannels([]messaging.ResolvedRecipient{emailOnly}))
	assert.Equal(t, []messaging.Channel{messaging.ChannelSMS, messaging.ChannelBoth},
		messaging.AvailableChannels([]messaging.ResolvedRecipient{phoneOnly, neither}))
	assert.Equal(t, messaging.Channels,
		messaging.AvailableChannels([]messaging.ResolvedRecipient{emailOnly, phoneOnly}))
	assert.Empty(t, messaging.AvailableChannels([]messaging.ResolvedRecipient{neither}))
}
