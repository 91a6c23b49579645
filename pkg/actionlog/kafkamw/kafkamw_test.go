package kafkamw

import (
	"context"
	"errors"
	"testing"

	"github.com/JailtonJunior94/actionlog/pkg/actionlog"
)

type recordingForwarder struct {
	docs []*actionlog.ActionDocument
}

func (f *recordingForwarder) Forward(_ context.Context, doc *actionlog.ActionDocument) {
	f.docs = append(f.docs, doc)
}

func newTestManager(fwd actionlog.Forwarder) *actionlog.LogManager {
	return actionlog.NewLogManager("collector", "host-1", actionlog.DefaultConfig(),
		actionlog.WithForwarder(fwd),
		actionlog.WithCorrelator(actionlog.NewCorrelator("collector")),
	)
}

func TestEventTypeActionName(t *testing.T) {
	if got := EventTypeActionName(map[string]string{"event_type": "order.created"}); got != "kafka.consume.order.created" {
		t.Fatalf("unexpected action name: %s", got)
	}
	if got := EventTypeActionName(map[string]string{}); got != "kafka.consume" {
		t.Fatalf("expected fallback action name, got %s", got)
	}
}

func TestWrap_SuccessEndsWithOK(t *testing.T) {
	fwd := &recordingForwarder{}
	m := newTestManager(fwd)

	handler := Wrap(m, EventTypeActionName, func(ctx context.Context, params map[string]string, body []byte) error {
		if actionlog.Current(ctx) == nil {
			t.Fatal("expected an action bound into the handler context")
		}
		return nil
	})

	err := handler(context.Background(), map[string]string{"event_type": "order.created"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fwd.docs) != 1 || fwd.docs[0].Result != "OK" {
		t.Fatalf("expected a single OK document, got %+v", fwd.docs)
	}
}

func TestWrap_PropagatesNextsError(t *testing.T) {
	fwd := &recordingForwarder{}
	m := newTestManager(fwd)
	wantErr := errors.New("decode failed")

	handler := Wrap(m, nil, func(ctx context.Context, params map[string]string, body []byte) error {
		return wantErr
	})

	err := handler(context.Background(), map[string]string{}, nil)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected propagated error, got %v", err)
	}
	if len(fwd.docs) != 1 || fwd.docs[0].Result != "ERROR" {
		t.Fatalf("expected a single ERROR document, got %+v", fwd.docs)
	}
}

func TestWrap_RecoversPanicAndRepanics(t *testing.T) {
	fwd := &recordingForwarder{}
	m := newTestManager(fwd)

	handler := Wrap(m, nil, func(ctx context.Context, params map[string]string, body []byte) error {
		panic("boom")
	})

	defer func() {
		if recover() == nil {
			t.Fatal("expected the wrapper to re-panic")
		}
		if len(fwd.docs) != 1 || fwd.docs[0].Result != "ERROR" {
			t.Fatalf("expected a single ERROR document despite the panic, got %+v", fwd.docs)
		}
	}()
	_ = handler(context.Background(), map[string]string{}, nil)
}
