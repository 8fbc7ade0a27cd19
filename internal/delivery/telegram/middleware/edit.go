package middleware

import (
	"time"

	"gopkg.in/telebot.v3"
	tmw "gopkg.in/telebot.v3/middleware"

	"shift-tracker/internal/platform/logger"
)

// EditOrSend edits the message behind a callback, falling back to a new
// message when there is nothing to edit or the edit fails.
func EditOrSend(c telebot.Context, text string, markup *telebot.ReplyMarkup) error {
	opts := []any{}
	if markup != nil {
		opts = append(opts, markup)
	}
	if c.Callback() != nil {
		if err := c.Edit(text, opts...); err == nil {
			return nil
		}
	}
	return c.Send(text, opts...)
}

// Whitelist admits only the listed chats. An empty list admits everyone.
func Whitelist(chats []int64) telebot.MiddlewareFunc {
	if len(chats) == 0 {
		return func(next telebot.HandlerFunc) telebot.HandlerFunc { return next }
	}
	return tmw.Whitelist(chats...)
}

// Log records every update with its chat and how long the handler took.
func Log() telebot.MiddlewareFunc {
	log := logger.Named("telegram")
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			start := time.Now()
			err := next(c)
			evt := log.Debug()
			if err != nil {
				evt = log.Warn().Err(err)
			}
			var chatID int64
			if chat := c.Chat(); chat != nil {
				chatID = chat.ID
			}
			evt.Int64("chat_id", chatID).Dur("elapsed", time.Since(start)).Msg("update handled")
			return err
		}
	}
}
