package app

import (
	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/quizbot/internal/infra/config"
)

// NewPoller создает Poller в зависимости от режима
func NewPoller(cfg *config.Config) telebot.Poller {
	if cfg.TelegramBot.Mode == config.ModeWebhook {
		return &telebot.Webhook{
			Listen: cfg.TelegramBot.WebhookListen,
			Endpoint: &telebot.WebhookEndpoint{
				PublicURL: cfg.TelegramBot.WebhookURL,
			},
		}
	}
	return &telebot.LongPoller{Timeout: cfg.TelegramBot.PollTimeout}
}
