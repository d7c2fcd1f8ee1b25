// Package logger builds *slog.Logger values for notifykit services and tools.
//
// New takes functional options: an environment preset (WithEnvironment,
// WithDevelopment, WithStaging, WithProduction), level and format overrides,
// static attributes and context extractors. Development logs text at debug
// level; staging and production log JSON at info level. Options apply in
// order, so a WithLevelName after WithEnvironment overrides the preset.
//
// Every logger wraps its handler in a LogHandlerDecorator, which adds the
// attributes returned by the registered ContextExtractor functions to each
// record. The dispatch pipeline uses this to stamp every line with the
// attempt id stored in the context:
//
//	log := logger.New(
//		logger.WithEnvironment(os.Getenv("APP_ENV"), "notifyctl"),
//		logger.WithLevelName(os.Getenv("LOG_LEVEL")),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "message dispatched",
//		logger.MessageID(receipt.MessageID),
//		logger.Channel(payload.Channel.String()),
//	)
//
// The attribute helpers in attr.go (AttemptID, ContactID, CategoryID, Channel,
// State and friends) keep key names consistent across packages. Error and
// Errors return an empty attribute for nil errors, so they can be passed
// unconditionally.
package logger
