package core

import "context"

type contextKey string

const ctxKeyTrigger contextKey = "reload_trigger"

// Reload triggers recorded in logs.
const (
	TriggerStartup = "startup"
	TriggerAPI     = "api"
	TriggerCLI     = "cli"
)

// ContextWithTrigger records what caused a snapshot load, e.g. "api" or "startup".
func ContextWithTrigger(ctx context.Context, trigger string) context.Context {
	return context.WithValue(ctx, ctxKeyTrigger, trigger)
}

// TriggerFromContext returns the load trigger, or "unknown".
func TriggerFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyTrigger).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
