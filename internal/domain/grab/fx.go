// Package grab contains the download domain module
package grab

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Ethiocoderss/tgbot/config"
	telegramDelivery "github.com/Ethiocoderss/tgbot/internal/domain/grab/delivery/telegram"
	"github.com/Ethiocoderss/tgbot/internal/domain/grab/deps"
	kafkaRepo "github.com/Ethiocoderss/tgbot/internal/domain/grab/repository/kafka"
	"github.com/Ethiocoderss/tgbot/internal/domain/grab/repository/memory"
	"github.com/Ethiocoderss/tgbot/internal/domain/grab/usecase/buissines"
	"github.com/Ethiocoderss/tgbot/internal/domain/grab/workers"
	"github.com/Ethiocoderss/tgbot/internal/infrastructure/telegram"
)

// Module provides grab domain components for fx dependency injection
var Module = fx.Module("grab",
	// Repository
	fx.Provide(provideSessionStore),
	fx.Provide(kafkaRepo.NewProducer),

	// Workers
	fx.Provide(providePool),

	// UseCase
	fx.Provide(buissines.NewUseCase),

	// Delivery - Telegram (needs raw bot from infrastructure)
	fx.Provide(provideTelegramHandlers),
	fx.Provide(telegramDelivery.NewRouter),

	// Register routes and producer shutdown
	fx.Invoke(wireAndRegister),
)

// provideSessionStore creates the per-chat session store
func provideSessionStore() deps.SessionStore {
	return memory.NewSessionStore()
}

// providePool creates the bounded download pool from config
func providePool(cfg *config.DownloaderConfig) *workers.Pool {
	return workers.NewPool(cfg.PoolSize)
}

// provideTelegramHandlers creates Telegram handlers with raw bot
func provideTelegramHandlers(
	uc *buissines.UseCase,
	bot *telegram.Bot,
	downloaderCfg *config.DownloaderConfig,
	telegramCfg *config.TelegramConfig,
	logger zerolog.Logger,
) *telegramDelivery.Handlers {
	return telegramDelivery.NewHandlers(uc, bot.Raw(), downloaderCfg.Dir, telegramCfg.UploadTimeout, logger)
}

// wireAndRegister registers Telegram routes and producer lifecycle
func wireAndRegister(
	lc fx.Lifecycle,
	router *telegramDelivery.Router,
	bot *telegram.Bot,
	producer deps.DownloadEventProducer,
) {
	router.RegisterRoutes(bot.Raw())

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return producer.Close()
		},
	})
}
