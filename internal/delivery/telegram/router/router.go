package router

import (
	"strings"

	"gopkg.in/telebot.v3"

	"shift-tracker/internal/platform/logger"
)

type HandlerFunc func(c telebot.Context, payload string) error

// CallbackRouter dispatches inline button callbacks by their unique key.
// Keys starting with DelegatePrefix go to Delegate.
type CallbackRouter struct {
	handlers       map[string]HandlerFunc
	DelegatePrefix string
	Delegate       func(c telebot.Context, key, payload string) error
}

func New() *CallbackRouter {
	return &CallbackRouter{handlers: make(map[string]HandlerFunc)}
}

func (r *CallbackRouter) Register(key string, h HandlerFunc) {
	r.handlers[key] = h
}

func (r *CallbackRouter) Attach(bot *telebot.Bot) {
	bot.Handle(telebot.OnCallback, func(c telebot.Context) error {
		_, err := r.Dispatch(c)
		return err
	})
}

// Dispatch answers the callback and runs its handler. It reports whether a
// handler was found.
func (r *CallbackRouter) Dispatch(c telebot.Context) (bool, error) {
	key, payload := Parse(c.Data())
	logger.Named("telegram").Debug().Str("key", key).Str("payload", payload).Msg("callback")
	_ = c.Respond()

	if r.DelegatePrefix != "" && strings.HasPrefix(key, r.DelegatePrefix) {
		if r.Delegate != nil {
			return true, r.Delegate(c, key, payload)
		}
		return true, nil
	}
	if h, ok := r.handlers[key]; ok {
		return true, h(c, payload)
	}
	return false, nil
}

// Parse splits raw callback data into its unique key and payload.
func Parse(raw string) (key, payload string) {
	raw = strings.TrimPrefix(raw, "\f")
	key = raw
	if i := strings.IndexByte(raw, '|'); i >= 0 {
		key = raw[:i]
		payload = raw[i+1:]
	}
	return key, payload
}
