package httpapi

import (
	"context"
	"net/http"
)

// serverBaseCtx is a process-level context that can be canceled on shutdown.
var serverBaseCtx = context.Background()

// SetBaseContext sets the process-level base context used by handlers.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		serverBaseCtx = context.Background()
		return
	}
	serverBaseCtx = ctx
}

// predictContext returns a context canceled when the client goes away, the
// server shuts down, or the configured predict timeout elapses.
func predictContext(r *http.Request) (context.Context, context.CancelFunc) {
	base := r.Context()
	var ctx context.Context
	var cancel context.CancelFunc
	if predictTimeout > 0 {
		ctx, cancel = context.WithTimeout(base, predictTimeout)
	} else {
		ctx, cancel = context.WithCancel(base)
	}
	stop := context.AfterFunc(serverBaseCtx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// aborted reports whether the request was abandoned by the client or by shutdown.
func aborted(r *http.Request) bool {
	return r.Context().Err() != nil || serverBaseCtx.Err() != nil
}
