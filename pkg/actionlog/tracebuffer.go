package actionlog

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	softTruncationSuffix = "...(soft trace limit reached)\n"
	hardTruncationSuffix = "...(hard trace limit reached)"

	traceTimestampFormat = "15:04:05.000"
)

// traceLine records where one rendered event starts in the buffer, so
// Render can locate warning boundaries without re-scanning the text.
type traceLine struct {
	offset int
	level  Level
}

// TraceBuffer is an append-only, bounded debug log attached to an
// ActionLog. Events are appended in program order; Render decides, at
// read time, how much of the buffer to return given a soft and hard
// character budget.
type TraceBuffer struct {
	mu    sync.Mutex
	buf   strings.Builder
	lines []traceLine
}

// NewTraceBuffer creates an empty trace buffer.
func NewTraceBuffer() *TraceBuffer {
	return &TraceBuffer{}
}

// Append records one logging event. Stack traces, when supplied via err,
// follow the message on subsequent lines.
func (b *TraceBuffer) Append(ts time.Time, level Level, logger, message string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lines = append(b.lines, traceLine{offset: b.buf.Len(), level: level})

	fmt.Fprintf(&b.buf, "%s %s %s - %s\n", ts.Format(traceTimestampFormat), level, logger, message)
	if err != nil {
		fmt.Fprintf(&b.buf, "%+v\n", err)
	}
}

// Len returns the number of events appended so far.
func (b *TraceBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines)
}

// HasWarnOrAbove reports whether any appended event is at level >= Warn.
func (b *TraceBuffer) HasWarnOrAbove() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, l := range b.lines {
		if l.level >= LevelWarn {
			return true
		}
	}
	return false
}

// Render returns the buffer contents truncated to softLimit characters,
// extended to the end of a straddled warning line (up to hardLimit) when
// the soft cut lands inside or after a WARN/ERROR event, per the
// soft/hard trace limit policy.
func (b *TraceBuffer) Render(softLimit, hardLimit int) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	full := b.buf.String()
	if len(full) <= softLimit {
		return full
	}

	idx, sawWarnBefore := b.straddleAt(softLimit)
	line := b.lines[idx]
	lineEnd := b.lineEnd(idx, len(full))

	if sawWarnBefore || line.level >= LevelWarn {
		if lineEnd > hardLimit {
			return full[:hardLimit] + hardTruncationSuffix
		}
		return full[:lineEnd] + softTruncationSuffix
	}

	return full[:softLimit] + softTruncationSuffix
}

// straddleAt returns the index of the line containing position pos, along
// with whether any line strictly before it is at level >= Warn.
func (b *TraceBuffer) straddleAt(pos int) (idx int, sawWarnBefore bool) {
	idx = len(b.lines) - 1
	for i, l := range b.lines {
		if l.offset > pos {
			idx = i - 1
			break
		}
	}
	if idx < 0 {
		idx = 0
	}
	for i := 0; i < idx; i++ {
		if b.lines[i].level >= LevelWarn {
			sawWarnBefore = true
			break
		}
	}
	return idx, sawWarnBefore
}

// lineEnd returns the byte offset one past the end of line idx.
func (b *TraceBuffer) lineEnd(idx, total int) int {
	if idx+1 < len(b.lines) {
		return b.lines[idx+1].offset
	}
	return total
}
