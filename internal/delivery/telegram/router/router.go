package router

import (
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/telebot.v3"
)

type HandlerFunc func(c telebot.Context, payload string) error

// CallbackRouter dispatches inline button callbacks by their unique key.
// telebot encodes button data as "\f<key>|<payload>".
type CallbackRouter struct {
	handlers map[string]HandlerFunc
	log      zerolog.Logger
}

func New(log zerolog.Logger) *CallbackRouter {
	return &CallbackRouter{handlers: make(map[string]HandlerFunc), log: log}
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

// Dispatch runs the handler registered for the callback's key. It reports
// false when no handler matched.
func (r *CallbackRouter) Dispatch(c telebot.Context) (bool, error) {
	key, payload := ParseCallback(c.Data())
	r.log.Debug().Str("key", key).Str("payload", payload).Msg("callback")
	_ = c.Respond()

	h, ok := r.handlers[key]
	if !ok {
		return false, nil
	}
	return true, h(c, payload)
}

func ParseCallback(raw string) (key, payload string) {
	raw = strings.TrimPrefix(raw, "\f")
	key, payload, _ = strings.Cut(raw, "|")
	return key, payload
}
