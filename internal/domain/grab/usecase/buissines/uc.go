// Package buissines contains business logic for the grab domain
package buissines

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ethiocoderss/tgbot/internal/domain/grab/consts"
	"github.com/Ethiocoderss/tgbot/internal/domain/grab/deps"
	"github.com/Ethiocoderss/tgbot/internal/domain/grab/dto"
	"github.com/Ethiocoderss/tgbot/internal/domain/grab/entities"
	graberrors "github.com/Ethiocoderss/tgbot/internal/domain/grab/errors"
	"github.com/Ethiocoderss/tgbot/internal/domain/grab/workers"
	"github.com/Ethiocoderss/tgbot/pkg/format"
)

// audioContainers is the allow-list for the single audio menu entry
var audioContainers = map[string]bool{
	"m4a":  true,
	"webm": true,
	"mp3":  true,
}

// eventPublishTimeout bounds best-effort Kafka publishes so they never hold
// up the user-facing flow
const eventPublishTimeout = 5 * time.Second

// UseCase contains business logic for link resolution and downloads
type UseCase struct {
	extractor deps.Extractor
	sessions  deps.SessionStore
	producer  deps.DownloadEventProducer
	pool      *workers.Pool
	logger    zerolog.Logger
}

// NewUseCase creates a new UseCase instance
func NewUseCase(
	extractor deps.Extractor,
	sessions deps.SessionStore,
	producer deps.DownloadEventProducer,
	pool *workers.Pool,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		extractor: extractor,
		sessions:  sessions,
		producer:  producer,
		pool:      pool,
		logger:    logger,
	}
}

// ResolveLink probes a submitted link and builds the format selection menu.
// Returns graberrors.ErrNoFormats when nothing presentable was found; that
// outcome is terminal for the link.
func (uc *UseCase) ResolveLink(ctx context.Context, req *dto.ResolveLinkRequest) (*dto.LinkMenu, error) {
	uc.logger.Info().
		Int64("chat_id", req.ChatID).
		Str("url", req.URL).
		Msg("Resolving submitted link")

	info, err := uc.extractor.Probe(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	options := buildVideoOptions(info)
	if audio := buildAudioOption(info); audio != nil {
		options = append(options, *audio)
	}

	if len(options) == 0 {
		uc.logger.Warn().Str("video_id", info.ID).Msg("No presentable formats for link")
		return nil, graberrors.ErrNoFormats
	}

	// Remembered for the upload caption once a selection completes
	uc.sessions.Remember(req.ChatID, info.Title)

	uc.logger.Info().
		Str("video_id", info.ID).
		Int("options", len(options)).
		Msg("Link resolved")

	return &dto.LinkMenu{
		VideoID:      info.ID,
		Title:        info.Title,
		ThumbnailURL: info.ThumbnailURL,
		Options:      options,
	}, nil
}

// Download fetches and merges the selected streams into outputPath through
// the bounded worker pool, publishes a lifecycle event and returns the
// artifact path with its display title.
func (uc *UseCase) Download(ctx context.Context, req *dto.DownloadRequest, outputPath string) (*dto.DownloadResult, error) {
	sel := entities.Selection{Kind: req.Kind, VideoID: req.VideoID, Quality: req.Quality}

	uc.logger.Info().
		Int64("requester_id", req.RequesterID).
		Str("video_id", sel.VideoID).
		Str("kind", sel.Kind).
		Msg("Starting download")

	err := uc.pool.Do(ctx, func() error {
		return uc.extractor.Fetch(ctx, sel.WatchURL(), sel.FormatSelector(), outputPath)
	})
	if err != nil {
		uc.publishFailed(req.RequesterID, sel, err)
		return nil, err
	}

	title, ok := uc.sessions.LastTitle(req.ChatID)
	if !ok {
		title = "video"
	}

	uc.publishCompleted(req.RequesterID, sel, outputPath)

	return &dto.DownloadResult{Path: outputPath, Title: title}, nil
}

// buildVideoOptions selects presentable video variants: mp4 with an explicit
// height, one button per distinct height, heights descending (first
// occurrence wins)
func buildVideoOptions(info *entities.VideoInfo) []dto.MenuOption {
	var candidates []entities.Format
	for _, f := range info.Formats {
		if f.HasVideo() && f.Ext == consts.VideoContainer && f.Height > 0 {
			candidates = append(candidates, f)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Height > candidates[j].Height
	})

	var options []dto.MenuOption
	seen := make(map[int]bool)
	for _, f := range candidates {
		if seen[f.Height] {
			continue
		}
		seen[f.Height] = true

		sel := entities.Selection{
			Kind:    consts.KindVideo,
			VideoID: info.ID,
			Quality: strconv.Itoa(f.Height),
		}
		options = append(options, dto.MenuOption{
			Label: videoLabel(f.Height, f.Size),
			Token: sel.Token(),
		})
	}

	return options
}

// buildAudioOption scans formats in reverse-declared order and picks the
// first audio-only stream in an allowed container
func buildAudioOption(info *entities.VideoInfo) *dto.MenuOption {
	for i := len(info.Formats) - 1; i >= 0; i-- {
		f := info.Formats[i]
		if !f.HasAudio() || f.HasVideo() || !audioContainers[f.Ext] {
			continue
		}

		sel := entities.Selection{
			Kind:    consts.KindAudio,
			VideoID: info.ID,
			Quality: f.ID,
		}
		return &dto.MenuOption{
			Label: audioLabel(f.Size),
			Token: sel.Token(),
		}
	}

	return nil
}

func videoLabel(height int, size int64) string {
	label := "🎬 " + strconv.Itoa(height) + "p"
	if suffix := format.Size(size); suffix != "" {
		label += " " + suffix
	}
	return label
}

func audioLabel(size int64) string {
	label := "🎵 Audio"
	if suffix := format.Size(size); suffix != "" {
		label += " " + suffix
	}
	return label
}

// publishCompleted publishes a completed event, best effort
func (uc *UseCase) publishCompleted(requesterID int64, sel entities.Selection, path string) {
	ctx, cancel := context.WithTimeout(context.Background(), eventPublishTimeout)
	defer cancel()

	if err := uc.producer.SendDownloadCompleted(ctx, requesterID, sel, path); err != nil {
		uc.logger.Warn().Err(err).Str("video_id", sel.VideoID).Msg("Failed to publish completed event")
	}
}

// publishFailed publishes a failed event, best effort
func (uc *UseCase) publishFailed(requesterID int64, sel entities.Selection, cause error) {
	ctx, cancel := context.WithTimeout(context.Background(), eventPublishTimeout)
	defer cancel()

	if err := uc.producer.SendDownloadFailed(ctx, requesterID, sel, cause); err != nil {
		uc.logger.Warn().Err(err).Str("video_id", sel.VideoID).Msg("Failed to publish failed event")
	}
}
