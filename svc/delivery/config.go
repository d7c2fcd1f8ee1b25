package delivery

import "time"

// Config holds Delivery Backend settings.
// DevDir switches to the on-disk backend. The Postmark tokens are optional;
// when both are set, direct immediate emails skip the backend and go
// through Postmark.
type Config struct {
	BaseURL              string        `env:"DELIVERY_BASE_URL" envDefault:"http://localhost:8080/api"`
	Timeout              time.Duration `env:"DELIVERY_TIMEOUT" envDefault:"30s"`
	DevDir               string        `env:"DELIVERY_DEV_DIR"`
	PostmarkServerToken  string        `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string        `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string        `env:"SENDER_EMAIL"`
}

func (c Config) postmarkEnabled() bool {
	return c.PostmarkServerToken != "" && c.PostmarkAccountToken != ""
}
