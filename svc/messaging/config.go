package messaging

import (
	"fmt"
	"time"

	"golang.org/x/text/currency"
)

// Config holds the engine settings.
type Config struct {
	EmailUnitCost    float64 `env:"MESSAGING_EMAIL_UNIT_COST" envDefault:"0.01"`
	SMSUnitCost      float64 `env:"MESSAGING_SMS_UNIT_COST" envDefault:"0.05"`
	BothUnitCost     float64 `env:"MESSAGING_BOTH_UNIT_COST" envDefault:"0.06"`
	Currency         string  `env:"MESSAGING_CURRENCY" envDefault:"EUR"`
	SMSSender        string  `env:"MESSAGING_SMS_SENDER" envDefault:"notifykit"`
	ScheduleLocation string  `env:"MESSAGING_SCHEDULE_LOCATION" envDefault:"Local"`
}

// DefaultConfig returns the values used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		EmailUnitCost:    0.01,
		SMSUnitCost:      0.05,
		BothUnitCost:     0.06,
		Currency:         "EUR",
		SMSSender:        "notifykit",
		ScheduleLocation: "Local",
	}
}

// CostTable builds the unit cost table from the configured prices.
func (c Config) CostTable() (CostTable, error) {
	unit, err := currency.ParseISO(c.Currency)
	if err != nil {
		return CostTable{}, fmt.Errorf("messaging: invalid currency %q: %w", c.Currency, err)
	}
	return CostTable{
		Currency: unit,
		Units: map[Channel]float64{
			ChannelEmail: c.EmailUnitCost,
			ChannelSMS:   c.SMSUnitCost,
			ChannelBoth:  c.BothUnitCost,
		},
	}, nil
}

// Location resolves ScheduleLocation. An empty value means local time.
func (c Config) Location() (*time.Location, error) {
	if c.ScheduleLocation == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.ScheduleLocation)
	if err != nil {
		return nil, fmt.Errorf("messaging: invalid schedule location %q: %w", c.ScheduleLocation, err)
	}
	return loc, nil
}
