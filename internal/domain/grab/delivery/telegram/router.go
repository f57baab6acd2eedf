// Package telegram contains Telegram delivery layer
package telegram

import (
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/Ethiocoderss/tgbot/internal/domain/grab/consts"
)

// Router registers Telegram bot handlers
type Router struct {
	handlers *Handlers
	logger   zerolog.Logger
}

// NewRouter creates new Telegram router
func NewRouter(handlers *Handlers, logger zerolog.Logger) *Router {
	return &Router{
		handlers: handlers,
		logger:   logger,
	}
}

// RegisterRoutes registers all handlers on the bot
func (r *Router) RegisterRoutes(bot *tgbot.Bot) {
	bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/start", tgbot.MatchTypeExact, r.handlers.HandleStart)

	// Any non-command text message is treated as a video link
	bot.RegisterHandlerMatchFunc(matchPlainText, r.handlers.HandleLink)

	// Button presses carry "<kind>:<video-id>:<quality-or-format-id>" tokens
	bot.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, consts.KindVideo+":", tgbot.MatchTypePrefix, r.handlers.HandleSelection)
	bot.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, consts.KindAudio+":", tgbot.MatchTypePrefix, r.handlers.HandleSelection)

	r.logger.Info().Msg("All Telegram handlers registered successfully")
}

// matchPlainText matches text messages that are not bot commands
func matchPlainText(update *models.Update) bool {
	if update.Message == nil || update.Message.Text == "" {
		return false
	}
	return !strings.HasPrefix(update.Message.Text, "/")
}
