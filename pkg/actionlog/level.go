package actionlog

// Level is the severity of a single logging event intercepted during an
// action. It is distinct from Result: many Debug/Info events can occur
// inside an action whose Result stays OK.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the canonical textual form of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Result is the outcome of an action. It forms a join-semilattice under
// Escalate: OK <= WARN <= ERROR, and must never move backwards once set.
type Result int

const (
	ResultOK Result = iota
	ResultWarn
	ResultError
)

// String returns the canonical textual form of the result.
func (r Result) String() string {
	switch r {
	case ResultOK:
		return "OK"
	case ResultWarn:
		return "WARN"
	case ResultError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Escalate returns the larger (more severe) of the two results. It is the
// only way Result should ever be mutated — there is no setter that allows
// downgrading.
func Escalate(current, candidate Result) Result {
	if candidate > current {
		return candidate
	}
	return current
}

// severityOf maps an event Level to the Result it would produce if it were
// the only event processed for an action. Debug/Info events never escalate
// the result.
func severityOf(level Level) Result {
	switch {
	case level >= LevelError:
		return ResultError
	case level >= LevelWarn:
		return ResultWarn
	default:
		return ResultOK
	}
}

// Trace is the sampling decision for an action's trace buffer.
type Trace int

const (
	// TraceNone retains the trace only if flushTraceLog() is true at end.
	TraceNone Trace = iota
	// TraceCurrent always flushes this action's trace.
	TraceCurrent
	// TraceCascade always flushes this action's trace and propagates the
	// decision to downstream actions via the correlator.
	TraceCascade
)

// String returns the wire form used in the x-trace header.
func (t Trace) String() string {
	switch t {
	case TraceCurrent:
		return "CURRENT"
	case TraceCascade:
		return "CASCADE"
	default:
		return "NONE"
	}
}

// ParseTrace parses the x-trace header value. Unrecognized values default
// to TraceNone.
func ParseTrace(s string) Trace {
	switch s {
	case "CURRENT":
		return TraceCurrent
	case "CASCADE":
		return TraceCascade
	default:
		return TraceNone
	}
}
