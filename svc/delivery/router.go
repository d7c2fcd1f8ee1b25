package delivery

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/svc/messaging"
)

// Router sends direct emails through Postmark and everything else through
// the primary backend.
type Router struct {
	primary messaging.Backend
	email   *PostmarkEmail
	logger  *slog.Logger
}

var _ messaging.Backend = (*Router)(nil)

// NewRouter creates a new router. A nil email sender routes everything to primary.
func NewRouter(primary messaging.Backend, email *PostmarkEmail, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}
	return &Router{primary: primary, email: email, logger: log}
}

func (r *Router) Send(ctx context.Context, p messaging.Payload) (messaging.Receipt, error) {
	if r.email != nil && r.email.Accepts(p) {
		r.logger.LogAttrs(ctx, slog.LevelDebug, "routing email to postmark",
			logger.Component("delivery"), logger.Channel(p.Channel.String()))
		return r.email.Send(ctx, p)
	}
	return r.primary.Send(ctx, p)
}

func (r *Router) Schedule(ctx context.Context, p messaging.Payload) (messaging.Receipt, error) {
	return r.primary.Schedule(ctx, p)
}
