// Package kafkamw adapts a LogManager to the Kafka consume boundary
// (§5 "boundary adapters"): it wraps a messaging.ConsumeHandler so every
// inbound message runs inside its own action, correlated from the
// message's headers the same way an HTTP request is correlated from its
// headers in pkg/actionlog/httpmw.
package kafkamw

import (
	"context"

	"github.com/JailtonJunior94/actionlog/pkg/actionlog"
	"github.com/JailtonJunior94/actionlog/pkg/messaging"
)

// ActionName derives the action name for a consumed message from its
// header params.
type ActionName func(params map[string]string) string

// EventTypeActionName names the action after the "event_type" header
// populated by pkg/messaging/kafka's dispatcher, falling back to
// "kafka.consume" when absent.
func EventTypeActionName(params map[string]string) string {
	if eventType := params["event_type"]; eventType != "" {
		return "kafka.consume." + eventType
	}
	return "kafka.consume"
}

// Wrap returns a messaging.ConsumeHandler that begins an action for every
// message handed to next, binds it into the handler's context, and ends
// it with next's returned error once it completes (§4.5, §4.6). A nested
// NestedBeginError panic from Begin is never expected here since each
// invocation starts from a context with no bound action.
func Wrap(manager *actionlog.LogManager, actionName ActionName, next messaging.ConsumeHandler) messaging.ConsumeHandler {
	if actionName == nil {
		actionName = EventTypeActionName
	}
	return func(ctx context.Context, params map[string]string, body []byte) (err error) {
		runCtx, handle := manager.BeginCorrelated(ctx, actionName(params), "", actionlog.MapHeaders(params))

		defer func() {
			if rec := recover(); rec != nil {
				manager.End(runCtx, handle, panicError{value: rec})
				panic(rec)
			}
			manager.End(runCtx, handle, err)
		}()

		err = next(runCtx, params, body)
		return err
	}
}

type panicError struct{ value any }

func (e panicError) Error() string {
	if err, ok := e.value.(error); ok {
		return err.Error()
	}
	return "panic"
}
