package ytdlp

import (
	"errors"
	"testing"

	goytdlp "github.com/lrstanley/go-ytdlp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	graberrors "github.com/Ethiocoderss/tgbot/internal/domain/grab/errors"
)

func TestClassify_Taxonomy(t *testing.T) {
	c := NewClient(zerolog.Nop())

	tests := []struct {
		name   string
		stderr string
		want   error
	}{
		{"unavailable", "ERROR: [youtube] abc123: Video unavailable", graberrors.ErrVideoUnavailable},
		{"private", "ERROR: [youtube] abc123: Private video. Sign in if you've been granted access", graberrors.ErrVideoUnavailable},
		{"invalid url", "ERROR: 'notalink' is not a valid URL", graberrors.ErrInvalidURL},
		{"other extractor failure", "ERROR: [youtube] abc123: This video is not available in your country", graberrors.ErrExtraction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.classify(&goytdlp.Result{Stderr: tt.stderr}, errors.New("exit status 1"))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClassify_UnknownFailurePassesThrough(t *testing.T) {
	c := NewClient(zerolog.Nop())

	cause := errors.New("context deadline exceeded")
	err := c.classify(nil, cause)
	assert.Equal(t, cause, err)
}

func TestClassifyFetch(t *testing.T) {
	c := NewClient(zerolog.Nop())

	err := c.classifyFetch(&goytdlp.Result{Stderr: "ERROR: unable to download video data"}, errors.New("exit status 1"))
	assert.ErrorIs(t, err, graberrors.ErrDownloadFailed)

	cause := errors.New("signal: killed")
	err = c.classifyFetch(nil, cause)
	assert.Equal(t, cause, err)
}

func TestProbePayload_Decoding(t *testing.T) {
	raw := `{
		"id": "abc123",
		"title": "Some Video",
		"thumbnail": "https://i.ytimg.com/vi/abc123/hq720.jpg",
		"formats": [
			{"format_id": "140", "ext": "m4a", "vcodec": "none", "acodec": "mp4a.40.2", "filesize": 3145728},
			{"format_id": "136", "ext": "mp4", "vcodec": "avc1", "acodec": "none", "height": 720, "filesize_approx": 10485760.5},
			{"format_id": "sb0", "ext": "mhtml", "vcodec": "none", "acodec": "none"}
		]
	}`

	info, err := decodeProbePayload([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, "abc123", info.ID)
	assert.Equal(t, "Some Video", info.Title)
	require.Len(t, info.Formats, 3)

	audio := info.Formats[0]
	assert.True(t, audio.HasAudio())
	assert.False(t, audio.HasVideo())
	assert.Equal(t, int64(3145728), audio.Size)

	video := info.Formats[1]
	assert.True(t, video.HasVideo())
	assert.Equal(t, 720, video.Height)
	// Approximate size is used when no exact size is reported
	assert.Equal(t, int64(10485760), video.Size)

	storyboard := info.Formats[2]
	assert.False(t, storyboard.HasVideo())
	assert.False(t, storyboard.HasAudio())
	assert.Zero(t, storyboard.Height)
	assert.Zero(t, storyboard.Size)
}
