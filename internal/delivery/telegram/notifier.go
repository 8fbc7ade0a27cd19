package telegram

import (
	"context"

	"gopkg.in/telebot.v3"
)

// Notifier sends reminder texts through the bot.
type Notifier struct {
	Bot *telebot.Bot
}

func (n Notifier) Notify(_ context.Context, chatID int64, text string) error {
	_, err := n.Bot.Send(telebot.ChatID(chatID), text)
	return err
}
