package actionlog

import "strings"

// Wire header names (§4.6, §6). Fixed for interop — do not rename.
const (
	HeaderCorrelationID = "x-correlation-id"
	HeaderRefID         = "x-ref-id"
	HeaderClient        = "x-client"
	HeaderTrace         = "x-trace"
)

// HeaderGetter abstracts reading a single header value, so the correlator
// works the same whether the transport is net/http.Header, a Kafka
// message's header slice, or a plain map.
type HeaderGetter interface {
	Get(key string) string
}

// HeaderSetter abstracts writing a single header value.
type HeaderSetter interface {
	Set(key, value string)
}

// MapHeaders adapts a plain map[string]string to HeaderGetter/HeaderSetter,
// for transports (Kafka, custom RPC) that don't already expose one.
type MapHeaders map[string]string

func (m MapHeaders) Get(key string) string { return m[key] }
func (m MapHeaders) Set(key, value string) { m[key] = value }

// Correlator parses and emits the correlation headers that knit actions
// into causal graphs across process hops (§4.6).
type Correlator struct {
	appName string
}

// NewCorrelator creates a Correlator that stamps outbound x-client headers
// with appName.
func NewCorrelator(appName string) *Correlator {
	return &Correlator{appName: appName}
}

// Inbound extracts correlation state from the headers of an incoming call.
// Absence of x-correlation-id marks the action as root.
func (c *Correlator) Inbound(headers HeaderGetter) (correlationIDs, refIDs, clients []string, trace Trace) {
	correlationIDs = splitCSV(headers.Get(HeaderCorrelationID))
	refIDs = splitCSV(headers.Get(HeaderRefID))
	clients = splitCSV(headers.Get(HeaderClient))
	trace = ParseTrace(headers.Get(HeaderTrace))
	return
}

// Outbound injects the current action's correlation state into the
// headers of an outgoing call. CASCADE is always re-emitted downstream;
// CURRENT is not, since it only governs the action that received it.
func (c *Correlator) Outbound(a *ActionLog, headers HeaderSetter) {
	headers.Set(HeaderCorrelationID, strings.Join(a.CorrelationIDs(), ","))
	headers.Set(HeaderRefID, a.ID())
	if c.appName != "" {
		headers.Set(HeaderClient, c.appName)
	}
	if a.TraceMode() == TraceCascade {
		headers.Set(HeaderTrace, TraceCascade.String())
	}
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
