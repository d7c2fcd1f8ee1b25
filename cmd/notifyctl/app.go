package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dmitrymomot/notifykit/pkg/config"
	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/pkg/requestid"
	"github.com/dmitrymomot/notifykit/svc/delivery"
	"github.com/dmitrymomot/notifykit/svc/directory"
	"github.com/dmitrymomot/notifykit/svc/messaging"
)

const serviceName = "notifyctl"

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"warn"`
}

type settings struct {
	app       appConfig
	messaging messaging.Config
	directory directory.Config
	delivery  delivery.Config
}

func loadSettings() (settings, error) {
	var s settings
	if err := config.Load(&s.app); err != nil {
		return s, err
	}
	if err := config.Load(&s.messaging); err != nil {
		return s, err
	}
	if err := config.Load(&s.directory); err != nil {
		return s, err
	}
	if err := config.Load(&s.delivery); err != nil {
		return s, err
	}
	return s, nil
}

func newLogger(cfg appConfig, w io.Writer) *slog.Logger {
	return logger.New(
		logger.WithEnvironment(cfg.Env, serviceName),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithOutput(w),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
}

// app is everything a messaging command needs, wired from the environment.
type app struct {
	log        *slog.Logger
	catalog    *messaging.Catalog
	dispatcher *messaging.Dispatcher
}

// newApp loads settings, builds the adapters and fills the catalog.
// Logs go to logOut so command output stays machine readable.
func newApp(ctx context.Context, logOut io.Writer) (*app, error) {
	s, err := loadSettings()
	if err != nil {
		return nil, err
	}
	log := newLogger(s.app, logOut)

	dir, err := directory.New(s.directory, directory.WithLogger(log))
	if err != nil {
		return nil, err
	}
	catalog := messaging.NewCatalog(dir)
	if err := catalog.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("load directory: %w", err)
	}

	composer, err := messaging.NewComposerFromConfig(s.messaging)
	if err != nil {
		return nil, err
	}
	costs, err := s.messaging.CostTable()
	if err != nil {
		return nil, err
	}
	backend, err := delivery.New(s.delivery, log)
	if err != nil {
		return nil, err
	}

	return &app{
		log:        log,
		catalog:    catalog,
		dispatcher: messaging.NewDispatcher(catalog, composer, costs, backend, messaging.WithLogger(log)),
	}, nil
}

// newStatusClient builds the HTTP backend used for message status lookups.
func newStatusClient(logOut io.Writer) (*delivery.HTTPBackend, error) {
	s, err := loadSettings()
	if err != nil {
		return nil, err
	}
	return delivery.NewHTTPBackend(s.delivery, delivery.WithLogger(newLogger(s.app, logOut)))
}
