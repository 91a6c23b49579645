package forwarder

import (
	"testing"

	"github.com/JailtonJunior94/actionlog/pkg/actionlog"
)

func doc(id string) *actionlog.ActionDocument {
	return &actionlog.ActionDocument{ID: id}
}

func TestDropOldestQueue_PushUnderCapacityNeverDrops(t *testing.T) {
	q := newDropOldestQueue(3)
	if dropped := q.push(doc("a")); dropped {
		t.Fatal("expected no drop under capacity")
	}
	if dropped := q.push(doc("b")); dropped {
		t.Fatal("expected no drop under capacity")
	}

	items := q.drain()
	if len(items) != 2 || items[0].ID != "a" || items[1].ID != "b" {
		t.Fatalf("unexpected drained items: %+v", items)
	}
}

func TestDropOldestQueue_PushAtCapacityDropsOldest(t *testing.T) {
	q := newDropOldestQueue(2)
	q.push(doc("a"))
	q.push(doc("b"))

	dropped := q.push(doc("c"))
	if !dropped {
		t.Fatal("expected push at capacity to report a drop")
	}

	items := q.drain()
	if len(items) != 2 || items[0].ID != "b" || items[1].ID != "c" {
		t.Fatalf("expected oldest (a) dropped, got %+v", items)
	}
}

func TestDropOldestQueue_DrainEmptiesQueue(t *testing.T) {
	q := newDropOldestQueue(4)
	q.push(doc("a"))
	_ = q.drain()

	if items := q.drain(); items != nil {
		t.Fatalf("expected nil on drain of an empty queue, got %+v", items)
	}
}

func TestDropOldestQueue_WaitSignalsOnPush(t *testing.T) {
	q := newDropOldestQueue(2)
	q.push(doc("a"))

	select {
	case <-q.wait():
	default:
		t.Fatal("expected wait() to be signaled after a push")
	}
}

func TestDropOldestQueue_ZeroCapacityFloorsToOne(t *testing.T) {
	q := newDropOldestQueue(0)
	q.push(doc("a"))
	dropped := q.push(doc("b"))
	if !dropped {
		t.Fatal("expected zero capacity to floor to 1, causing an immediate drop")
	}
	items := q.drain()
	if len(items) != 1 || items[0].ID != "b" {
		t.Fatalf("expected only the latest item retained, got %+v", items)
	}
}
