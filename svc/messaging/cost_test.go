package messaging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/notifykit/svc/messaging"
)

func TestCostTable_Estimate(t *testing.T) {
	t.Parallel()

	table, err := messaging.DefaultConfig().CostTable()
	require.NoError(t, err)
	assert.Equal(t, currency.EUR, table.Currency)

	t.Run("zero recipients cost nothing", func(t *testing.T) {
		t.Parallel()
		for _, ch := range []messaging.Channel{messaging.ChannelEmail, messaging.ChannelSMS, messaging.ChannelBoth, ""} {
			assert.Zero(t, table.Estimate(ch, 0).Total, ch)
			assert.Zero(t, table.Estimate(ch, -3).Total, ch)
		}
	})

	t.Run("empty channel costs nothing", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, table.Estimate("", 10).Total)
	})

	t.Run("count times unit", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 0.05, table.Estimate(messaging.ChannelEmail, 5).Total, 1e-9)
		assert.InDelta(t, 0.25, table.Estimate(messaging.ChannelSMS, 5).Total, 1e-9)
		est := table.Estimate(messaging.ChannelBoth, 5)
		assert.InDelta(t, 0.30, est.Total, 1e-9)
		assert.Equal(t, 5, est.Recipients)
		assert.InDelta(t, 0.06, est.UnitCost, 1e-9)
	})

	t.Run("negative price clamps to zero", func(t *testing.T) {
		t.Parallel()
		neg := messaging.CostTable{Currency: currency.USD, Units: map[messaging.Channel]float64{messaging.ChannelSMS: -1}}
		assert.Zero(t, neg.Estimate(messaging.ChannelSMS, 3).Total)
	})
}

func TestEstimate_Format(t *testing.T) {
	t.Parallel()

	table, err := messaging.Config{Currency: "USD", SMSUnitCost: 0.05}.CostTable()
	require.NoError(t, err)
	out := table.Estimate(messaging.ChannelSMS, 3).Format(language.English)
	assert.Contains(t, out, "0.15")
	assert.Contains(t, out, "$")
}

func TestConfig_CostTableInvalidCurrency(t *testing.T) {
	t.Parallel()
	_, err := messaging.Config{Currency: "nope"}.CostTable()
	assert.Error(t, err)
}
