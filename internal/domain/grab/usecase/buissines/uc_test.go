package buissines

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ethiocoderss/tgbot/internal/domain/grab/dto"
	"github.com/Ethiocoderss/tgbot/internal/domain/grab/entities"
	graberrors "github.com/Ethiocoderss/tgbot/internal/domain/grab/errors"
	"github.com/Ethiocoderss/tgbot/internal/domain/grab/repository/kafka"
	"github.com/Ethiocoderss/tgbot/internal/domain/grab/repository/memory"
	"github.com/Ethiocoderss/tgbot/internal/domain/grab/workers"
)

type fakeExtractor struct {
	info     *entities.VideoInfo
	probeErr error

	fetchErr      error
	fetchedURL    string
	fetchSelector string
	fetchedPath   string
}

func (f *fakeExtractor) Probe(_ context.Context, _ string) (*entities.VideoInfo, error) {
	if f.probeErr != nil {
		return nil, f.probeErr
	}
	return f.info, nil
}

func (f *fakeExtractor) Fetch(_ context.Context, url, selector, outputPath string) error {
	f.fetchedURL = url
	f.fetchSelector = selector
	f.fetchedPath = outputPath
	return f.fetchErr
}

func newTestUseCase(extractor *fakeExtractor, sessions *memory.SessionStore) *UseCase {
	return NewUseCase(extractor, sessions, &kafka.NoopProducer{}, workers.NewPool(1), zerolog.Nop())
}

func videoFormat(id string, height int, ext string, size int64) entities.Format {
	return entities.Format{ID: id, Ext: ext, VideoCodec: "avc1", AudioCodec: "none", Height: height, Size: size}
}

func audioFormat(id, ext string, size int64) entities.Format {
	return entities.Format{ID: id, Ext: ext, VideoCodec: "none", AudioCodec: "mp4a", Size: size}
}

func TestResolveLink_DeduplicatesHeightsDescending(t *testing.T) {
	extractor := &fakeExtractor{info: &entities.VideoInfo{
		ID:    "abc123",
		Title: "Some Video",
		Formats: []entities.Format{
			videoFormat("135", 480, "mp4", 0),
			videoFormat("136", 720, "mp4", 10 << 20),
			videoFormat("298", 720, "mp4", 20 << 20),
			videoFormat("137", 1080, "mp4", 0),
			videoFormat("248", 1080, "webm", 0), // wrong container, skipped
		},
	}}
	uc := newTestUseCase(extractor, memory.NewSessionStore())

	menu, err := uc.ResolveLink(context.Background(), &dto.ResolveLinkRequest{ChatID: 1, URL: "u"})
	require.NoError(t, err)

	require.Len(t, menu.Options, 3)
	assert.Equal(t, "🎬 1080p", menu.Options[0].Label)
	assert.Equal(t, "video:abc123:1080", menu.Options[0].Token)
	assert.Equal(t, "🎬 720p (10 MB)", menu.Options[1].Label)
	assert.Equal(t, "video:abc123:720", menu.Options[1].Token)
	assert.Equal(t, "video:abc123:480", menu.Options[2].Token)
}

func TestResolveLink_PicksLastDeclaredAudio(t *testing.T) {
	extractor := &fakeExtractor{info: &entities.VideoInfo{
		ID:    "abc123",
		Title: "Some Video",
		Formats: []entities.Format{
			audioFormat("139", "m4a", 0),
			audioFormat("140", "m4a", 3 << 20),
			audioFormat("616", "mhtml", 0), // container not allowed
		},
	}}
	uc := newTestUseCase(extractor, memory.NewSessionStore())

	menu, err := uc.ResolveLink(context.Background(), &dto.ResolveLinkRequest{ChatID: 1, URL: "u"})
	require.NoError(t, err)

	require.Len(t, menu.Options, 1)
	assert.Equal(t, "🎵 Audio (3 MB)", menu.Options[0].Label)
	assert.Equal(t, "audio:abc123:140", menu.Options[0].Token)
}

func TestResolveLink_NoFormats(t *testing.T) {
	extractor := &fakeExtractor{info: &entities.VideoInfo{
		ID:    "abc123",
		Title: "Some Video",
		Formats: []entities.Format{
			videoFormat("vp9", 720, "webm", 0), // wrong container
			{ID: "sb0", Ext: "mhtml", VideoCodec: "none", AudioCodec: "none"},
		},
	}}
	sessions := memory.NewSessionStore()
	uc := newTestUseCase(extractor, sessions)

	_, err := uc.ResolveLink(context.Background(), &dto.ResolveLinkRequest{ChatID: 1, URL: "u"})
	assert.ErrorIs(t, err, graberrors.ErrNoFormats)

	// Terminal outcome: nothing is remembered for the chat
	_, ok := sessions.LastTitle(1)
	assert.False(t, ok)
}

func TestResolveLink_RemembersTitle(t *testing.T) {
	extractor := &fakeExtractor{info: &entities.VideoInfo{
		ID:      "abc123",
		Title:   "Remember Me",
		Formats: []entities.Format{videoFormat("136", 720, "mp4", 0)},
	}}
	sessions := memory.NewSessionStore()
	uc := newTestUseCase(extractor, sessions)

	_, err := uc.ResolveLink(context.Background(), &dto.ResolveLinkRequest{ChatID: 42, URL: "u"})
	require.NoError(t, err)

	title, ok := sessions.LastTitle(42)
	require.True(t, ok)
	assert.Equal(t, "Remember Me", title)
}

func TestResolveLink_PropagatesProbeError(t *testing.T) {
	extractor := &fakeExtractor{probeErr: graberrors.ErrVideoUnavailable}
	uc := newTestUseCase(extractor, memory.NewSessionStore())

	_, err := uc.ResolveLink(context.Background(), &dto.ResolveLinkRequest{ChatID: 1, URL: "u"})
	assert.ErrorIs(t, err, graberrors.ErrVideoUnavailable)
}

func TestDownload_VideoSelector(t *testing.T) {
	extractor := &fakeExtractor{}
	sessions := memory.NewSessionStore()
	sessions.Remember(7, "A Title")
	uc := newTestUseCase(extractor, sessions)

	res, err := uc.Download(context.Background(), &dto.DownloadRequest{
		ChatID:      7,
		RequesterID: 99,
		Kind:        "video",
		VideoID:     "abc123",
		Quality:     "720",
	}, "99_abc123.mp4")
	require.NoError(t, err)

	assert.Equal(t,
		"bestvideo[height<=720][ext=mp4]+bestaudio[ext=m4a]/best[height<=720][ext=mp4]/best",
		extractor.fetchSelector)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", extractor.fetchedURL)
	assert.Equal(t, "99_abc123.mp4", extractor.fetchedPath)
	assert.Equal(t, "A Title", res.Title)
}

func TestDownload_AudioSelectorIsFormatID(t *testing.T) {
	extractor := &fakeExtractor{}
	uc := newTestUseCase(extractor, memory.NewSessionStore())

	res, err := uc.Download(context.Background(), &dto.DownloadRequest{
		ChatID:      7,
		RequesterID: 99,
		Kind:        "audio",
		VideoID:     "abc123",
		Quality:     "140",
	}, "99_abc123.m4a")
	require.NoError(t, err)

	assert.Equal(t, "140", extractor.fetchSelector)
	// No remembered session falls back to a generic caption
	assert.Equal(t, "video", res.Title)
}

func TestDownload_PropagatesFetchError(t *testing.T) {
	extractor := &fakeExtractor{fetchErr: graberrors.ErrDownloadFailed}
	uc := newTestUseCase(extractor, memory.NewSessionStore())

	_, err := uc.Download(context.Background(), &dto.DownloadRequest{
		ChatID:      7,
		RequesterID: 99,
		Kind:        "video",
		VideoID:     "abc123",
		Quality:     "480",
	}, "99_abc123.mp4")
	assert.ErrorIs(t, err, graberrors.ErrDownloadFailed)
}

func TestDownload_CancelledWhileQueued(t *testing.T) {
	extractor := &fakeExtractor{}
	uc := newTestUseCase(extractor, memory.NewSessionStore())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.Download(ctx, &dto.DownloadRequest{
		ChatID:      7,
		RequesterID: 99,
		Kind:        "video",
		VideoID:     "abc123",
		Quality:     "480",
	}, "99_abc123.mp4")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
