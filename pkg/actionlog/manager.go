package actionlog

import (
	"context"
	"errors"
	"time"
)

// Forwarder hands a completed document off to whatever transport carries
// it to topic action-log (§4.7). Implementations must not block the
// owning action thread for long — see pkg/actionlog/forwarder for the
// bounded, drop-oldest queue this interface is meant to front.
type Forwarder interface {
	Forward(ctx context.Context, doc *ActionDocument)
}

// Handle is the bound reference to one action's ActionLog. It is what
// LogManager.Begin returns and what every logging call along the action's
// call graph must reach, directly or via the context it is bound into.
type Handle struct {
	log *ActionLog
}

// Log returns the underlying ActionLog so callers can use its
// Context/Stat/Track/Process operations directly.
func (h *Handle) Log() *ActionLog { return h.log }

type actionLogCtxKey struct{}

// Current returns the ActionLog handle bound to ctx, or nil if none is
// bound. Go has no OS thread-local storage; context.Context is this
// module's stand-in, following the same request-scoped-value pattern the
// teacher's httpserver middleware uses for request ids (§9 design note).
func Current(ctx context.Context) *Handle {
	h, _ := ctx.Value(actionLogCtxKey{}).(*Handle)
	return h
}

// Bind attaches handle to ctx, returning a derived context. Used when
// handing an action off to a worker-pool goroutine for fan-out (§5):
// the child task rebinds on entry and simply lets the derived context go
// out of scope ("unbinds") on exit.
func Bind(ctx context.Context, handle *Handle) context.Context {
	return context.WithValue(ctx, actionLogCtxKey{}, handle)
}

// LogManager binds a logical thread of execution to an active action,
// intercepts logging events, applies the configured filter, and emits
// records through a Forwarder (§4.5).
type LogManager struct {
	cfg        Config
	app        string
	host       string
	filter     *LogFilter
	correlator *Correlator
	forwarder  Forwarder
}

// ManagerOption configures a LogManager.
type ManagerOption func(*LogManager)

// WithFilter sets the field-masking registry applied before emission.
func WithFilter(filter *LogFilter) ManagerOption {
	return func(m *LogManager) { m.filter = filter }
}

// WithCorrelator sets the correlator BeginCorrelated uses to parse inbound
// correlation headers, including CASCADE inheritance from x-trace.
func WithCorrelator(correlator *Correlator) ManagerOption {
	return func(m *LogManager) { m.correlator = correlator }
}

// WithForwarder sets the transport that emitted records are handed to.
func WithForwarder(forwarder Forwarder) ManagerOption {
	return func(m *LogManager) { m.forwarder = forwarder }
}

// NewLogManager creates a LogManager for app running on host.
func NewLogManager(app, host string, cfg Config, opts ...ManagerOption) *LogManager {
	m := &LogManager{cfg: cfg, app: app, host: host}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Begin creates a new ActionLog for action, binds it into a derived
// context, and returns both. Calling Begin again on a context that
// already has a bound, unended handle is a programming error and panics
// (§4.5, §5 "nested begin without end is a programming error, fatal").
func (m *LogManager) Begin(ctx context.Context, action, id string) (context.Context, *Handle) {
	if existing := Current(ctx); existing != nil {
		panic(&NestedBeginError{ExistingActionID: existing.Log().ID(), NewAction: action})
	}

	log := New(action, id, m.cfg)
	handle := &Handle{log: log}
	return Bind(ctx, handle), handle
}

// BeginCorrelated is Begin plus populating the correlation fields from an
// inbound call's headers (§4.6).
func (m *LogManager) BeginCorrelated(ctx context.Context, action, id string, headers HeaderGetter) (context.Context, *Handle) {
	newCtx, handle := m.Begin(ctx, action, id)
	if m.correlator != nil && headers != nil {
		correlationIDs, refIDs, clients, trace := m.correlator.Inbound(headers)
		handle.Log().SetCorrelation(correlationIDs, refIDs, clients)
		handle.Log().SetTrace(trace)
	}
	return newCtx, handle
}

// Process records one logging event against handle's ActionLog.
func (m *LogManager) Process(handle *Handle, event Event) {
	handle.Log().Process(event)
}

// End finalizes handle's ActionLog: computes elapsed time, folds in a
// throwable if one unwound to the boundary, applies the filter, builds
// the document, and hands it to the forwarder. Emission happens exactly
// once per ActionLog (§3).
func (m *LogManager) End(ctx context.Context, handle *Handle, err error) *ActionDocument {
	log := handle.Log()
	log.Finish(time.Since(log.Date()))

	if err != nil {
		log.Fail(err, errorCodeFor(ctx, err), time.Now())
	}

	doc := BuildDocument(log, m.filter, m.app, m.host, 0)

	if m.forwarder != nil {
		m.forwarder.Forward(ctx, doc)
	}
	return doc
}

// errorCodeFor picks the default error code for an uncaught error: a
// cancelled context surfaces as CANCELLED (§5 "Cancellation / timeouts"),
// anything else as the generic internal-fault ERROR code.
func errorCodeFor(ctx context.Context, err error) string {
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return ErrorCodeCancelled
	}
	return ErrorCodeError
}
