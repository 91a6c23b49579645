package actionlog

import "testing"

func TestLogFilter_ApplyContextRedactsSensitiveKeys(t *testing.T) {
	f := NewLogFilter()
	in := map[string][]string{
		"user_password": {"hunter2"},
		"username":      {"alice"},
	}
	out := f.ApplyContext(in)

	if out["user_password"][0] != redactedValue {
		t.Fatalf("expected password value redacted, got %v", out["user_password"])
	}
	if out["username"][0] != "alice" {
		t.Fatalf("expected non-sensitive key to pass through, got %v", out["username"])
	}
}

func TestLogFilter_ApplyContextWithExtraFields(t *testing.T) {
	f := NewLogFilter("internal_id")
	out := f.ApplyContext(map[string][]string{"internal_id": {"42"}})
	if out["internal_id"][0] != redactedValue {
		t.Fatalf("expected custom field redacted, got %v", out["internal_id"])
	}
}

func TestLogFilter_ApplyErrorMessage(t *testing.T) {
	f := NewLogFilter()
	if got := f.ApplyErrorMessage("AUTH_TOKEN_INVALID", "leaked message"); got != redactedValue {
		t.Fatalf("expected redacted message for sensitive error code, got %q", got)
	}
	if got := f.ApplyErrorMessage("NOT_FOUND", "missing record"); got != "missing record" {
		t.Fatalf("expected unchanged message, got %q", got)
	}
}

func TestLogFilter_MatchIsCaseInsensitiveSubstring(t *testing.T) {
	f := NewLogFilter()
	out := f.ApplyContext(map[string][]string{"X-API-KEY": {"abc"}})
	if out["X-API-KEY"][0] != redactedValue {
		t.Fatalf("expected case-insensitive substring match to redact, got %v", out["X-API-KEY"])
	}
}
