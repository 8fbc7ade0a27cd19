package flows

import (
	"context"

	"gopkg.in/telebot.v3"
)

// ctxOf returns the request context stored by the bot middleware, or Background.
func ctxOf(c telebot.Context) context.Context {
	if ctx, ok := c.Get(ContextKey).(context.Context); ok {
		return ctx
	}
	return context.Background()
}

// ContextKey is where handlers find a context for store calls.
const ContextKey = "ctx"
