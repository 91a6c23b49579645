package actionlog

import (
	"strings"
	"testing"
	"time"
)

func TestTraceBuffer_RenderUnderSoftLimitReturnsFull(t *testing.T) {
	b := NewTraceBuffer()
	b.Append(time.Now(), LevelInfo, "svc", "hello", nil)

	got := b.Render(10_000, 1_000_000)
	if !strings.Contains(got, "hello") {
		t.Fatalf("expected rendered trace to contain message, got %q", got)
	}
	if strings.Contains(got, hardTruncationSuffix) || strings.HasSuffix(got, softTruncationSuffix) {
		t.Fatalf("did not expect a truncation suffix, got %q", got)
	}
}

func TestTraceBuffer_SoftLimitWithoutWarnTruncatesAtExactOffset(t *testing.T) {
	b := NewTraceBuffer()
	b.Append(time.Now(), LevelInfo, "svc", strings.Repeat("x", 200), nil)

	const soft = 50
	got := b.Render(soft, 1_000_000)

	if !strings.HasSuffix(got, softTruncationSuffix) {
		t.Fatalf("expected soft-limit suffix, got %q", got)
	}
	if len(got) != soft+len(softTruncationSuffix) {
		t.Fatalf("expected length %d, got %d", soft+len(softTruncationSuffix), len(got))
	}
}

func TestTraceBuffer_SoftLimitStraddlingWarnExtendsToLineEnd(t *testing.T) {
	b := NewTraceBuffer()
	b.Append(time.Now(), LevelInfo, "svc", "ok", nil)
	b.Append(time.Now(), LevelWarn, "svc", strings.Repeat("w", 200), nil)

	full := b.Render(1_000_000, 1_000_000)
	warnLineStart := strings.Index(full, "WARN")

	soft := warnLineStart + 10 // lands inside the WARN line
	got := b.Render(soft, 1_000_000)

	if !strings.HasSuffix(got, softTruncationSuffix) {
		t.Fatalf("expected soft-limit suffix, got %q", got)
	}
	// Extends through the end of the WARN line, not cut mid-line.
	body := strings.TrimSuffix(got, softTruncationSuffix)
	if !strings.HasSuffix(body, "\n") {
		t.Fatalf("expected render to extend to end of warning line, got %q", got)
	}
}

func TestTraceBuffer_HardLimitTruncatesWarnLine(t *testing.T) {
	b := NewTraceBuffer()
	b.Append(time.Now(), LevelWarn, "svc", strings.Repeat("w", 5000), nil)

	const soft = 10
	const hard = 100
	got := b.Render(soft, hard)

	if !strings.HasSuffix(got, hardTruncationSuffix) {
		t.Fatalf("expected hard-limit suffix, got suffix of %q", got[len(got)-40:])
	}
	if len(got) != hard+len(hardTruncationSuffix) {
		t.Fatalf("expected length %d, got %d", hard+len(hardTruncationSuffix), len(got))
	}
}

func TestTraceBuffer_HasWarnOrAbove(t *testing.T) {
	b := NewTraceBuffer()
	if b.HasWarnOrAbove() {
		t.Fatal("expected no warn on empty buffer")
	}
	b.Append(time.Now(), LevelInfo, "svc", "fine", nil)
	if b.HasWarnOrAbove() {
		t.Fatal("expected no warn after info-only event")
	}
	b.Append(time.Now(), LevelWarn, "svc", "uh oh", nil)
	if !b.HasWarnOrAbove() {
		t.Fatal("expected warn after a WARN event")
	}
}

func TestTraceBuffer_AppendWithErrorIncludesStack(t *testing.T) {
	b := NewTraceBuffer()
	b.Append(time.Now(), LevelError, "svc", "boom", errBoom)

	got := b.Render(10_000, 1_000_000)
	if !strings.Contains(got, "boom detail") {
		t.Fatalf("expected error detail in trace, got %q", got)
	}
}

type boomError struct{}

func (boomError) Error() string { return "boom detail" }

var errBoom = boomError{}
