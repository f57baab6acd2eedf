// Package ytdlp contains the extraction service client built on yt-dlp
package ytdlp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	goytdlp "github.com/lrstanley/go-ytdlp"
	"github.com/rs/zerolog"

	"github.com/Ethiocoderss/tgbot/internal/domain/grab/consts"
	"github.com/Ethiocoderss/tgbot/internal/domain/grab/entities"
	graberrors "github.com/Ethiocoderss/tgbot/internal/domain/grab/errors"
)

// Client implements deps.Extractor on top of the yt-dlp binary
// (via github.com/lrstanley/go-ytdlp)
type Client struct {
	logger zerolog.Logger
}

// NewClient creates a new extraction client
func NewClient(logger zerolog.Logger) *Client {
	return &Client{logger: logger}
}

// probePayload mirrors the subset of yt-dlp's --dump-single-json output the
// bot consumes. filesize_approx can come back fractional, hence float64.
type probePayload struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Thumbnail string        `json:"thumbnail"`
	Formats   []probeFormat `json:"formats"`
}

type probeFormat struct {
	FormatID       string   `json:"format_id"`
	Ext            string   `json:"ext"`
	VCodec         string   `json:"vcodec"`
	ACodec         string   `json:"acodec"`
	Height         *int     `json:"height"`
	Filesize       *float64 `json:"filesize"`
	FilesizeApprox *float64 `json:"filesize_approx"`
}

// Probe resolves metadata and the available format list without fetching media
func (c *Client) Probe(ctx context.Context, url string) (*entities.VideoInfo, error) {
	cmd := goytdlp.New().
		SkipDownload().
		DumpSingleJSON().
		NoPlaylist().
		Quiet()

	res, err := cmd.Run(ctx, url)
	if err != nil {
		return nil, c.classify(res, err)
	}

	info, err := decodeProbePayload([]byte(res.Stdout))
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("video_id", info.ID).
		Int("formats", len(info.Formats)).
		Msg("Link probed successfully")

	return info, nil
}

// Fetch downloads and merges the streams matched by selector into outputPath
func (c *Client) Fetch(ctx context.Context, url, selector, outputPath string) error {
	cmd := goytdlp.New().
		Format(selector).
		Output(outputPath).
		NoPlaylist().
		MergeOutputFormat(consts.VideoContainer).
		NoProgress().
		Quiet()

	c.logger.Info().
		Str("selector", selector).
		Str("output", outputPath).
		Msg("Starting yt-dlp download")

	res, err := cmd.Run(ctx, url)
	if err != nil {
		return c.classifyFetch(res, err)
	}

	return nil
}

// classify maps a raw probe failure onto the domain error taxonomy.
// yt-dlp exposes no structured error codes through go-ytdlp, only stderr
// text, so this falls back to substring sniffing. Fragile by necessity: the
// matched phrases are yt-dlp's own stable error strings.
func (c *Client) classify(res *goytdlp.Result, err error) error {
	msg := strings.ToLower(errorText(res, err))

	c.logger.Error().Str("cause", msg).Msg("yt-dlp probe failed")

	switch {
	case strings.Contains(msg, "video unavailable") || strings.Contains(msg, "private video"):
		return graberrors.ErrVideoUnavailable
	case strings.Contains(msg, "is not a valid url"):
		return graberrors.ErrInvalidURL
	case strings.Contains(msg, "error:"):
		return graberrors.ErrExtraction
	default:
		return err
	}
}

// classifyFetch maps a raw download failure onto the domain error taxonomy
func (c *Client) classifyFetch(res *goytdlp.Result, err error) error {
	msg := strings.ToLower(errorText(res, err))

	c.logger.Error().Str("cause", msg).Msg("yt-dlp download failed")

	if strings.Contains(msg, "error:") {
		return graberrors.ErrDownloadFailed
	}
	return err
}

// decodeProbePayload converts yt-dlp's JSON metadata into domain entities
func decodeProbePayload(raw []byte) (*entities.VideoInfo, error) {
	var payload probePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode yt-dlp metadata: %w", err)
	}

	info := &entities.VideoInfo{
		ID:           payload.ID,
		Title:        payload.Title,
		ThumbnailURL: payload.Thumbnail,
		Formats:      make([]entities.Format, 0, len(payload.Formats)),
	}

	for _, f := range payload.Formats {
		info.Formats = append(info.Formats, entities.Format{
			ID:         f.FormatID,
			Ext:        f.Ext,
			VideoCodec: f.VCodec,
			AudioCodec: f.ACodec,
			Height:     intValue(f.Height),
			Size:       sizeValue(f.Filesize, f.FilesizeApprox),
		})
	}

	return info, nil
}

func errorText(res *goytdlp.Result, err error) string {
	if res != nil && res.Stderr != "" {
		return res.Stderr + " " + err.Error()
	}
	return err.Error()
}

func intValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// sizeValue prefers the exact size, falling back to the approximate one
func sizeValue(exact, approx *float64) int64 {
	if exact != nil && *exact > 0 {
		return int64(*exact)
	}
	if approx != nil && *approx > 0 {
		return int64(*approx)
	}
	return 0
}
