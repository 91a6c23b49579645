// Package httpmw adapts a LogManager to the HTTP boundary (§5 "boundary
// adapters"): it begins and ends one action per inbound request, and
// propagates correlation headers the way pkg/httpserver's own
// middlewares propagate request ids.
package httpmw

import (
	"net/http"

	"github.com/JailtonJunior94/actionlog/pkg/actionlog"
	"github.com/JailtonJunior94/actionlog/pkg/httpserver"
)

// headerWrapper adapts http.Header to actionlog.HeaderGetter/HeaderSetter.
type headerWrapper struct{ h http.Header }

func (w headerWrapper) Get(key string) string { return w.h.Get(key) }
func (w headerWrapper) Set(key, value string) { w.h.Set(key, value) }

// ActionName derives the action name for a request. The default is
// "METHOD path"; callers with route-pattern-aware routers (chi) should
// supply a function that reports the matched pattern instead of the raw
// path, to keep the action cardinality bounded.
type ActionName func(r *http.Request) string

// DefaultActionName names the action "METHOD /raw/path".
func DefaultActionName(r *http.Request) string {
	return r.Method + " " + r.URL.Path
}

// Middleware returns an httpserver.Middleware that begins an action for
// every inbound request, binds it into the request context, ends it once
// the handler returns, and propagates inbound correlation headers.
func Middleware(manager *actionlog.LogManager, actionName ActionName) httpserver.Middleware {
	if actionName == nil {
		actionName = DefaultActionName
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, handle := manager.BeginCorrelated(r.Context(), actionName(r), "", headerWrapper{r.Header})

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			var handlerErr error
			defer func() {
				if rec := recover(); rec != nil {
					manager.End(ctx, handle, recoveredError{value: rec})
					panic(rec)
				}
				if sw.status >= http.StatusInternalServerError {
					handlerErr = statusError{status: sw.status}
				}
				manager.End(ctx, handle, handlerErr)
			}()

			next.ServeHTTP(sw, r.WithContext(ctx))
		})
	}
}

// statusWriter records the status code written to the response so the
// middleware can decide whether the action ended in error.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

type statusError struct{ status int }

func (e statusError) Error() string {
	return http.StatusText(e.status)
}

type recoveredError struct{ value any }

func (e recoveredError) Error() string {
	if err, ok := e.value.(error); ok {
		return err.Error()
	}
	return "panic"
}
