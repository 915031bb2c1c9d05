package tmdb

import (
	"fmt"
	"net/http"
	"time"
)

// authTransport decorates every outgoing request with the bearer credential
// and the cache lifetime the intermediate HTTP cache may serve it for.
type authTransport struct {
	next         http.RoundTripper
	bearer       string
	cacheControl string
}

func newAuthTransport(next http.RoundTripper, token string, maxAge time.Duration) *authTransport {
	t := &authTransport{next: next, bearer: "Bearer " + token}
	if maxAge > 0 {
		t.cacheControl = fmt.Sprintf("max-age=%d", int(maxAge.Seconds()))
	}
	return t
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("Authorization", t.bearer)
	r.Header.Set("Accept", "application/json")
	if t.cacheControl != "" {
		r.Header.Set("Cache-Control", t.cacheControl)
	}
	return t.next.RoundTrip(r)
}
