package actionlog

import "time"

// ActionDocument is the serialized, immutable record emitted once per
// ActionLog at end (§4.7). It is what crosses the wire to topic
// action-log and what the collector indexes.
//
// IsRoot makes explicit the convention the source expresses by overloading
// CorrelationIDs with nil-ness (§9 Open Question): true when the action
// has no upstream correlation id, in which case CorrelationIDs holds the
// action's own id for storage/query convenience.
type ActionDocument struct {
	ID               string               `json:"id"`
	Date             time.Time            `json:"date"`
	App              string               `json:"app"`
	Host             string               `json:"host"`
	Action           string               `json:"action"`
	Result           string               `json:"result"`
	ErrorCode        string               `json:"error_code,omitempty"`
	ErrorMessage     string               `json:"error_message,omitempty"`
	ElapsedNanos     int64                `json:"elapsed"`
	CPUTimeNanos     int64                `json:"cpu_time,omitempty"`
	Context          map[string][]string  `json:"context,omitempty"`
	Stats            map[string]float64   `json:"stats,omitempty"`
	PerformanceStats map[string]PerfEntry `json:"performance_stats,omitempty"`
	CorrelationIDs   []string             `json:"correlation_ids,omitempty"`
	RefIDs           []string             `json:"ref_ids,omitempty"`
	Clients          []string             `json:"clients,omitempty"`
	IsRoot           bool                 `json:"is_root"`
	TraceLog         string               `json:"trace_log,omitempty"`
}

// BuildDocument converts a finished ActionLog into the document that gets
// forwarded. filter may be nil, in which case context/errorMessage pass
// through unredacted.
func BuildDocument(a *ActionLog, filter *LogFilter, app, host string, cpuTimeNanos int64) *ActionDocument {
	doc := &ActionDocument{
		ID:               a.ID(),
		Date:             a.Date(),
		App:              app,
		Host:             host,
		Action:           a.Action(),
		Result:           a.Result(),
		ErrorCode:        a.ErrorCode(),
		ElapsedNanos:     a.ElapsedNanos(),
		CPUTimeNanos:     cpuTimeNanos,
		Stats:            a.Stats(),
		PerformanceStats: a.PerformanceStats(),
		CorrelationIDs:   a.CorrelationIDs(),
		RefIDs:           a.RefIDs(),
		Clients:          a.Clients(),
		IsRoot:           a.IsRoot(),
	}

	context := a.ContextValues()
	errorMessage := a.ErrorMessage()
	if filter != nil {
		context = filter.ApplyContext(context)
		errorMessage = filter.ApplyErrorMessage(a.ErrorCode(), errorMessage)
	}
	doc.Context = context
	doc.ErrorMessage = errorMessage

	if a.FlushTraceLog() {
		doc.TraceLog = a.Trace()
	}
	return doc
}
