package requestid

import (
	"net/http"
	"regexp"
)

const (
	Header      = "X-Request-ID"
	maxIDLength = 128
	idPattern   = "^[a-zA-Z0-9_-]+$"
)

var validIDRegex = regexp.MustCompile(idPattern)

// Transport copies the ID carried by the request context into the X-Request-ID
// header of outgoing requests. An explicit header set by the caller is kept.
func Transport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return roundTripper{next: next}
}

type roundTripper struct {
	next http.RoundTripper
}

func (t roundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	if r.Header.Get(Header) != "" {
		return t.next.RoundTrip(r)
	}
	id := FromContext(r.Context())
	if !isValidRequestID(id) {
		return t.next.RoundTrip(r)
	}
	// RoundTrippers must not modify the caller's request
	r = r.Clone(r.Context())
	r.Header.Set(Header, id)
	return t.next.RoundTrip(r)
}

func isValidRequestID(id string) bool {
	if len(id) == 0 || len(id) > maxIDLength {
		return false
	}
	return validIDRegex.MatchString(id)
}
