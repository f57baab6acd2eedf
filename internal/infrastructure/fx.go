// Package infrastructure contains infrastructure layer components
package infrastructure

import (
	"go.uber.org/fx"

	"github.com/Ethiocoderss/tgbot/internal/infrastructure/logger"
	"github.com/Ethiocoderss/tgbot/internal/infrastructure/telegram"
	"github.com/Ethiocoderss/tgbot/internal/infrastructure/ytdlp"
)

// Module provides all infrastructure components for fx dependency injection
var Module = fx.Module("infrastructure",
	logger.Module,
	telegram.Module,
	ytdlp.Module,
)
