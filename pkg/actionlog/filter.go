package actionlog

import "strings"

const redactedValue = "******"

// defaultSensitiveFields mirrors the default redaction list the teacher's
// otel logger ships (pkg/observability/otel/logger.go), reused here for
// the action-log's own context/error-message masking.
var defaultSensitiveFields = []string{
	"password", "passwd", "pwd", "secret", "token", "api_key", "apikey", "api-key",
	"authorization", "auth", "credential", "credentials", "private_key", "privatekey",
	"ssn", "social_security", "credit_card", "creditcard", "card_number", "cvv", "pin",
	"access_token", "refresh_token", "bearer", "session", "cookie",
}

// LogFilter masks context values and the error message whose key matches a
// registered sensitive field before a record is emitted (§4.4). Filtering
// always runs after truncation, so the filtered length never exceeds the
// pre-filter length.
type LogFilter struct {
	fields map[string]struct{}
}

// NewLogFilter builds a filter from the default sensitive-field list plus
// any extra field names supplied by the caller. The registry is immutable
// once built, matching §5's "filter registry is immutable after
// initialization".
func NewLogFilter(extra ...string) *LogFilter {
	fields := make(map[string]struct{}, len(defaultSensitiveFields)+len(extra))
	for _, f := range defaultSensitiveFields {
		fields[strings.ToLower(f)] = struct{}{}
	}
	for _, f := range extra {
		fields[strings.ToLower(f)] = struct{}{}
	}
	return &LogFilter{fields: fields}
}

// matches reports whether key names a field that should be redacted. The
// match is a substring match against a lowercased key, the same rule the
// teacher's isSensitiveKey uses.
func (f *LogFilter) matches(key string) bool {
	lower := strings.ToLower(key)
	for field := range f.fields {
		if strings.Contains(lower, field) {
			return true
		}
	}
	return false
}

// ApplyContext returns a copy of context with every value under a
// sensitive key replaced by the redacted marker. Non-matching keys pass
// through unchanged.
func (f *LogFilter) ApplyContext(context map[string][]string) map[string][]string {
	out := make(map[string][]string, len(context))
	for key, values := range context {
		if !f.matches(key) {
			out[key] = values
			continue
		}
		masked := make([]string, len(values))
		for i := range values {
			masked[i] = redactedValue
		}
		out[key] = masked
	}
	return out
}

// ApplyErrorMessage redacts the error message entirely when errorCode
// itself looks like a sensitive field name (rare, but keeps the contract
// symmetric with ApplyContext); otherwise it is returned unchanged.
func (f *LogFilter) ApplyErrorMessage(errorCode, message string) string {
	if errorCode != "" && f.matches(errorCode) {
		return redactedValue
	}
	return message
}
