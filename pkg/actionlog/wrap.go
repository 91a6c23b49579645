package actionlog

import (
	"context"
	"fmt"
)

// Wrap runs fn inside a begin/end pair managed by m: it opens an action
// named action with the given id, recovers any panic fn raises and turns
// it into an ERROR-result completion, and always ends the action exactly
// once before returning (§5 "uncaught panic at a boundary must still
// produce exactly one emitted record").
func Wrap(ctx context.Context, m *LogManager, action, id string, fn func(ctx context.Context, handle *Handle) error) (err error) {
	runCtx, handle := m.Begin(ctx, action, id)

	defer func() {
		if r := recover(); r != nil {
			panicErr := fmt.Errorf("panic in action %s: %v", action, r)
			m.End(runCtx, handle, panicErr)
			err = panicErr
			return
		}
		m.End(runCtx, handle, err)
	}()

	err = fn(runCtx, handle)
	return err
}
