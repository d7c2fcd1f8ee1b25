package messaging

import (
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CostTable holds per-recipient prices for each channel.
type CostTable struct {
	Currency currency.Unit
	Units    map[Channel]float64
}

// Estimate is the informational price of a send.
type Estimate struct {
	Channel    Channel
	Recipients int
	UnitCost   float64
	Total      float64
	Currency   currency.Unit
}

// Estimate prices count recipients on ch. It never fails and never goes negative:
// an empty or unknown channel, a non-positive count, or a negative price all yield zero.
func (t CostTable) Estimate(ch Channel, count int) Estimate {
	est := Estimate{Channel: ch, Currency: t.Currency}
	if ch == "" || count <= 0 {
		return est
	}
	unit := t.Units[ch]
	if unit < 0 {
		unit = 0
	}
	est.Recipients = count
	est.UnitCost = unit
	est.Total = float64(count) * unit
	return est
}

// Format renders the total with the currency symbol for the given language.
func (e Estimate) Format(tag language.Tag) string {
	total := math.Round(e.Total*100) / 100
	return message.NewPrinter(tag).Sprint(currency.Symbol(e.Currency.Amount(total)))
}

func (e Estimate) String() string {
	return e.Format(language.English)
}
