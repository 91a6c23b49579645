package actionlog

import (
	"time"
)

// Event is one logging event intercepted while an action is executing.
// It is handed to ActionLog.Process by the LogManager.
type Event struct {
	Time      time.Time
	Level     Level
	Logger    string
	Message   string
	ErrorCode string
	Err       error
}

// ActionLog is the in-memory accumulator for a single action (§3). It is
// owned by exactly one thread — the one that called LogManager.Begin —
// and its mutation methods are not internally synchronized; concurrent
// callers must coordinate externally (§5).
type ActionLog struct {
	id           string
	date         time.Time
	elapsedNanos int64
	action       string

	result       Result
	errorCode    string
	errorMessage string

	context map[string][]string
	stats   map[string]float64
	perf    *PerformanceStats

	correlationIDs []string
	refIDs         []string
	clients        []string

	trace       Trace
	traceBuffer *TraceBuffer

	cfg Config
}

// New creates an ActionLog for action, generating an id if id is empty.
func New(action, id string, cfg Config) *ActionLog {
	if id == "" {
		id = NewActionID()
	}
	return &ActionLog{
		id:          id,
		date:        time.Now().UTC(),
		action:      action,
		result:      ResultOK,
		context:     make(map[string][]string),
		stats:       make(map[string]float64),
		perf:        NewPerformanceStats(),
		traceBuffer: NewTraceBuffer(),
		cfg:         cfg,
	}
}

// ID returns the action's opaque identifier.
func (a *ActionLog) ID() string { return a.id }

// Action returns the action's logical name.
func (a *ActionLog) Action() string { return a.action }

// Date returns the action's start timestamp.
func (a *ActionLog) Date() time.Time { return a.date }

// Result returns the current severity as its string form (§4.3).
func (a *ActionLog) Result() string { return a.result.String() }

// ResultValue returns the current severity.
func (a *ActionLog) ResultValue() Result { return a.result }

// ErrorCode returns the error code recorded so far, if any.
func (a *ActionLog) ErrorCode() string { return a.errorCode }

// ErrorMessage returns the error message recorded so far, if any.
func (a *ActionLog) ErrorMessage() string { return a.errorMessage }

// SetTrace sets the trace sampling decision (§4.3 "Trace sampling").
func (a *ActionLog) SetTrace(t Trace) { a.trace = t }

// TraceMode returns the current trace sampling decision.
func (a *ActionLog) TraceMode() Trace { return a.trace }

// SetCorrelation populates the correlation fields from an inbound hop
// (§4.6). An empty correlationIDs leaves the action a root (see IsRoot).
func (a *ActionLog) SetCorrelation(correlationIDs, refIDs, clients []string) {
	a.correlationIDs = correlationIDs
	a.refIDs = refIDs
	a.clients = clients
}

// IsRoot reports whether this action has no upstream correlation id.
func (a *ActionLog) IsRoot() bool { return len(a.correlationIDs) == 0 }

// CorrelationIDs returns the upstream root-action ids, or, when this
// action is itself a root, the singleton containing its own id — see
// DESIGN.md's resolution of the source's null-overload convention.
func (a *ActionLog) CorrelationIDs() []string {
	if a.IsRoot() {
		return []string{a.id}
	}
	return a.correlationIDs
}

// RefIDs returns the immediate caller action ids.
func (a *ActionLog) RefIDs() []string { return a.refIDs }

// Clients returns the immediate caller app names.
func (a *ActionLog) Clients() []string { return a.clients }

// Context appends value to key's ordered value sequence. Values longer
// than MaxContextValueLength are rejected: the result is raised to at
// least WARN, errorMessage records why, and an empty string is stored in place
// of the value (§3).
func (a *ActionLog) Context(key, value string) {
	if len(value) > a.cfg.MaxContextValueLength {
		err := &ContextValueTooLongError{Key: key, Length: len(value), Limit: a.cfg.MaxContextValueLength}
		a.result = Escalate(a.result, ResultWarn)
		if a.errorMessage == "" {
			a.errorMessage = truncate(err.Error(), a.cfg.MaxContextValueLength)
		}
		a.context[key] = append(a.context[key], "")
		return
	}
	a.context[key] = append(a.context[key], value)
}

// ContextValues returns a snapshot of the accumulated context.
func (a *ActionLog) ContextValues() map[string][]string {
	out := make(map[string][]string, len(a.context))
	for k, v := range a.context {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Stat adds delta to the named stat, creating it on first use.
func (a *ActionLog) Stat(name string, delta float64) {
	a.stats[name] += delta
}

// Stats returns a snapshot of the accumulated stats.
func (a *ActionLog) Stats() map[string]float64 {
	out := make(map[string]float64, len(a.stats))
	for k, v := range a.stats {
		out[k] = v
	}
	return out
}

// Track records one performance sample for resource and returns the
// resource's call count after this sample (§4.2).
func (a *ActionLog) Track(resource string, elapsedNanos, readEntries, writeEntries int64) int64 {
	return a.perf.Track(resource, elapsedNanos, readEntries, writeEntries)
}

// PerformanceStats returns a snapshot of the per-resource performance
// counters.
func (a *ActionLog) PerformanceStats() map[string]PerfEntry {
	return a.perf.Snapshot()
}

// Process records one logging event: it always appends the event to the
// trace buffer, and, for events at level >= Warn, escalates the result
// and fills in errorCode/errorMessage on first occurrence (§4.3).
func (a *ActionLog) Process(event Event) {
	a.traceBuffer.Append(event.Time, event.Level, event.Logger, event.Message, event.Err)

	if event.Level < LevelWarn {
		return
	}

	a.result = Escalate(a.result, severityOf(event.Level))

	if a.errorMessage == "" {
		a.errorMessage = truncate(event.Message, a.cfg.MaxContextValueLength)
	}
	if a.errorCode == "" {
		if event.ErrorCode != "" {
			a.errorCode = event.ErrorCode
		} else {
			a.errorCode = ErrorCodeUnassigned
		}
	}
}

// Fail records an uncaught error as an ERROR-level event, deriving the
// error code from ErrorCode() when the error implements it, otherwise
// falling back to code (§4.5 "Severity mapping from uncaught throwable").
func (a *ActionLog) Fail(err error, code string, now time.Time) {
	if ec, ok := err.(interface{ ErrorCode() string }); ok {
		if v := ec.ErrorCode(); v != "" {
			code = v
		}
	}
	a.Process(Event{
		Time:      now,
		Level:     LevelError,
		Logger:    a.action,
		Message:   err.Error(),
		ErrorCode: code,
		Err:       err,
	})
}

// Trace renders the trace buffer using the soft/hard limits from the
// action's configuration.
func (a *ActionLog) Trace() string {
	return a.traceBuffer.Render(a.cfg.TraceSoftLimit, a.cfg.TraceHardLimit)
}

// FlushTraceLog reports whether the trace should be retained on the
// emitted record (§4.3).
func (a *ActionLog) FlushTraceLog() bool {
	return a.trace != TraceNone || a.traceBuffer.HasWarnOrAbove()
}

// Finish sets the final elapsed duration. Called once by LogManager.End.
func (a *ActionLog) Finish(elapsed time.Duration) {
	a.elapsedNanos = elapsed.Nanoseconds()
}

// ElapsedNanos returns the recorded elapsed time, valid after Finish.
func (a *ActionLog) ElapsedNanos() int64 { return a.elapsedNanos }

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
