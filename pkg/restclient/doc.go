// Package restclient is a small JSON-over-HTTP client used by the directory
// and delivery adapters.
//
// A Client is bound to one base URL. Get, Post and Delete (or Do) marshal the
// request body, apply a per-request timeout on top of the caller's context,
// and decode a 2xx JSON response. Non-2xx responses come back as *StatusError
// which unwraps to ErrUnexpectedStatus and carries the server's "message" field.
//
//	c, err := restclient.New("http://localhost:8080/api", restclient.WithTimeout(5*time.Second))
//	var contacts []Contact
//	err = c.Get(ctx, "/contacts", &contacts)
//
// Requests are never retried. WithOnResponse exposes every round trip for
// logging.
package restclient
