// Package ytdlp contains the extraction service client built on yt-dlp
package ytdlp

import (
	"context"

	goytdlp "github.com/lrstanley/go-ytdlp"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Ethiocoderss/tgbot/internal/domain/grab/deps"
)

// Module provides the extraction client for fx dependency injection
var Module = fx.Module("ytdlp",
	fx.Provide(provideClient),
	fx.Invoke(registerInstall),
)

// provideClient creates the extraction client
func provideClient(logger zerolog.Logger) deps.Extractor {
	return NewClient(logger.With().Str("component", "ytdlp").Logger())
}

// registerInstall provisions the yt-dlp binary before the bot starts polling
func registerInstall(lc fx.Lifecycle, logger zerolog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			install, err := goytdlp.Install(ctx, nil)
			if err != nil {
				return err
			}
			logger.Info().
				Str("executable", install.Executable).
				Str("version", install.Version).
				Msg("yt-dlp binary ready")
			return nil
		},
	})
}
