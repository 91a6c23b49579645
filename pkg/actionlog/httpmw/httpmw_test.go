package httpmw

import (
	"context"
	"net/http"
	"net/http/httptest"
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
	return actionlog.NewLogManager("checkout", "host-1", actionlog.DefaultConfig(),
		actionlog.WithForwarder(fwd),
		actionlog.WithCorrelator(actionlog.NewCorrelator("checkout")),
	)
}

func TestMiddleware_SuccessfulRequestEndsWithOK(t *testing.T) {
	fwd := &recordingForwarder{}
	m := newTestManager(fwd)

	mw := Middleware(m, DefaultActionName)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if actionlog.Current(r.Context()) == nil {
			t.Fatal("expected an action handle bound into the request context")
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if len(fwd.docs) != 1 {
		t.Fatalf("expected exactly one emitted document, got %d", len(fwd.docs))
	}
	if fwd.docs[0].Result != "OK" {
		t.Fatalf("expected OK result, got %s", fwd.docs[0].Result)
	}
	if fwd.docs[0].Action != "GET /orders" {
		t.Fatalf("expected default action name, got %s", fwd.docs[0].Action)
	}
}

func TestMiddleware_ServerErrorStatusEndsActionInError(t *testing.T) {
	fwd := &recordingForwarder{}
	m := newTestManager(fwd)

	mw := Middleware(m, DefaultActionName)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if len(fwd.docs) != 1 || fwd.docs[0].Result != "ERROR" {
		t.Fatalf("expected a single ERROR document, got %+v", fwd.docs)
	}
}

func TestMiddleware_PanicEndsActionAndRepanics(t *testing.T) {
	fwd := &recordingForwarder{}
	m := newTestManager(fwd)

	mw := Middleware(m, DefaultActionName)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec := httptest.NewRecorder()

	defer func() {
		if recover() == nil {
			t.Fatal("expected the middleware to re-panic after ending the action")
		}
		if len(fwd.docs) != 1 || fwd.docs[0].Result != "ERROR" {
			t.Fatalf("expected a single ERROR document despite the panic, got %+v", fwd.docs)
		}
	}()
	handler.ServeHTTP(rec, req)
}

func TestMiddleware_PropagatesInboundCorrelationHeaders(t *testing.T) {
	fwd := &recordingForwarder{}
	m := newTestManager(fwd)

	mw := Middleware(m, DefaultActionName)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handle := actionlog.Current(r.Context())
		if handle.Log().IsRoot() {
			t.Fatal("expected action to inherit the inbound correlation id and not be root")
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set(actionlog.HeaderCorrelationID, "root-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
}
