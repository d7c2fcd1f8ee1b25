package delivery

import (
	"log/slog"

	"github.com/dmitrymomot/notifykit/svc/messaging"
)

// New picks the backend for cfg: the on-disk backend when DevDir is set,
// otherwise the HTTP backend, fronted by a Router when Postmark is configured.
func New(cfg Config, log *slog.Logger) (messaging.Backend, error) {
	if log == nil {
		log = slog.Default()
	}
	if cfg.DevDir != "" {
		return NewDevBackend(cfg.DevDir), nil
	}

	primary, err := NewHTTPBackend(cfg, WithLogger(log))
	if err != nil {
		return nil, err
	}
	if !cfg.postmarkEnabled() {
		return primary, nil
	}

	email, err := NewPostmarkEmail(cfg)
	if err != nil {
		return nil, err
	}
	return NewRouter(primary, email, log), nil
}
