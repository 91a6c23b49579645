package httpclient

import (
	"net/http"

	"github.com/JailtonJunior94/actionlog/pkg/actionlog"
)

// correlationTransport injects the active action's correlation headers
// (§4.6) into every outbound request, the client-side half of what
// pkg/actionlog/httpmw does for inbound requests.
type correlationTransport struct {
	base       http.RoundTripper
	correlator *actionlog.Correlator
}

func (t *correlationTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if handle := actionlog.Current(req.Context()); handle != nil {
		req = req.Clone(req.Context())
		t.correlator.Outbound(handle.Log(), headerSetter{req.Header})
	}
	return t.base.RoundTrip(req)
}

type headerSetter struct{ h http.Header }

func (s headerSetter) Set(key, value string) { s.h.Set(key, value) }

// WithCorrelator wraps the client's transport chain so every outbound
// request made with an action bound into its context carries that
// action's correlation headers downstream.
func WithCorrelator(correlator *actionlog.Correlator) ClientOption {
	return func(c *ObservableClient) {
		c.correlator = correlator
	}
}
