// Package app contains application bootstrap
package app

import (
	"go.uber.org/fx"

	"github.com/Ethiocoderss/tgbot/config"
	"github.com/Ethiocoderss/tgbot/internal/domain"
	"github.com/Ethiocoderss/tgbot/internal/infrastructure"
)

// CreateApp creates fx application with all modules
func CreateApp() fx.Option {
	return fx.Options(
		// Configuration
		fx.Provide(config.Out),

		// Infrastructure (logger, telegram bot, yt-dlp client)
		infrastructure.Module,

		// Domain (download business logic)
		domain.Module,
	)
}
