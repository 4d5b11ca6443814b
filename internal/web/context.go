package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/clientview/internal/core"
)

// reloadContext tags ctx as an API-triggered reload so loader logs can be
// traced back to the caller.
func reloadContext(ctx context.Context, r *http.Request) context.Context {
	return core.ContextWithTrigger(ctx, core.TriggerAPI+":"+r.RemoteAddr)
}
