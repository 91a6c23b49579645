package actionlog

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestWrap_PropagatesFnError(t *testing.T) {
	fwd := &recordingForwarder{}
	m := newTestManager(fwd)

	wantErr := errors.New("boom")
	err := Wrap(context.Background(), m, "order.create", "", func(ctx context.Context, handle *Handle) error {
		return wantErr
	})

	if !errors.Is(err, wantErr) {
		t.Fatalf("expected Wrap to propagate fn's error, got %v", err)
	}
	if len(fwd.docs) != 1 || fwd.docs[0].Result != "ERROR" {
		t.Fatalf("expected exactly one ERROR document, got %+v", fwd.docs)
	}
}

func TestWrap_RecoversPanicAndEndsExactlyOnce(t *testing.T) {
	fwd := &recordingForwarder{}
	m := newTestManager(fwd)

	err := Wrap(context.Background(), m, "order.create", "", func(ctx context.Context, handle *Handle) error {
		panic("kaboom")
	})

	if err == nil || !strings.Contains(err.Error(), "kaboom") {
		t.Fatalf("expected recovered panic error mentioning kaboom, got %v", err)
	}
	if len(fwd.docs) != 1 {
		t.Fatalf("expected exactly one emitted document after a panic, got %d", len(fwd.docs))
	}
}

func TestWrap_SuccessEndsWithOK(t *testing.T) {
	fwd := &recordingForwarder{}
	m := newTestManager(fwd)

	err := Wrap(context.Background(), m, "order.create", "", func(ctx context.Context, handle *Handle) error {
		handle.Log().Stat("items", 3)
		return nil
	})

	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(fwd.docs) != 1 || fwd.docs[0].Result != "OK" {
		t.Fatalf("expected one OK document, got %+v", fwd.docs)
	}
	if fwd.docs[0].Stats["items"] != 3 {
		t.Fatalf("expected stats to carry through, got %v", fwd.docs[0].Stats)
	}
}
