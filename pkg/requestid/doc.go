// Package requestid carries a correlation identifier through a context.Context
// and out over HTTP.
//
// Every send attempt gets an ID. It is stored in the context with WithContext
// (or Ensure, which generates one when missing), attached to outgoing requests
// by Transport as the "X-Request-ID" header, and added to log records by
// LoggerExtractor.
//
// Usage
//
//	ctx, id := requestid.Ensure(ctx)
//	client := &http.Client{Transport: requestid.Transport(nil)}
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	log.InfoContext(ctx, "sending") // request_id=<id>
//
// IDs that are empty, longer than 128 characters, or contain characters other
// than letters, digits, '-' and '_' are not forwarded.
package requestid
