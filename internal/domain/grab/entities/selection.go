package entities

import (
	"fmt"
	"strings"

	"github.com/Ethiocoderss/tgbot/internal/domain/grab/consts"
	graberrors "github.com/Ethiocoderss/tgbot/internal/domain/grab/errors"
)

// Selection identifies the user's menu choice, round-tripped through the
// callback token "<kind>:<video-id>:<quality-or-format-id>".
type Selection struct {
	Kind    string
	VideoID string
	// Quality is the requested height for video, the format id for audio
	Quality string
}

// Token encodes the selection into its callback wire format.
// Video ids and format ids are assumed not to contain ':'.
func (s Selection) Token() string {
	return fmt.Sprintf("%s:%s:%s", s.Kind, s.VideoID, s.Quality)
}

// ParseSelection decodes a callback token. Tokens come from button presses and
// are attacker-controllable, so malformed input is rejected rather than trusted.
func ParseSelection(token string) (Selection, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 3 {
		return Selection{}, graberrors.ErrMalformedToken
	}

	sel := Selection{Kind: parts[0], VideoID: parts[1], Quality: parts[2]}
	if sel.Kind != consts.KindVideo && sel.Kind != consts.KindAudio {
		return Selection{}, graberrors.ErrMalformedToken
	}
	if sel.VideoID == "" || sel.Quality == "" {
		return Selection{}, graberrors.ErrMalformedToken
	}

	return sel, nil
}

// WatchURL builds the canonical watch URL for the selected video
func (s Selection) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + s.VideoID
}

// Ext returns the container extension of the produced file
func (s Selection) Ext() string {
	if s.Kind == consts.KindAudio {
		return consts.AudioContainer
	}
	return consts.VideoContainer
}

// FileName builds the deterministic local file name for a requester.
// A single requester re-selecting the same video concurrently collides here.
func (s Selection) FileName(requesterID int64) string {
	return fmt.Sprintf("%d_%s.%s", requesterID, s.VideoID, s.Ext())
}

// FormatSelector builds the preference-ordered format expression consumed by
// the extractor. Audio selections name the format id directly; video
// selections ask for best-at-or-below the requested height in mp4 paired with
// m4a audio, then fall back to an unconstrained-container best at that height,
// then unconstrained best.
func (s Selection) FormatSelector() string {
	if s.Kind == consts.KindAudio {
		return s.Quality
	}

	return fmt.Sprintf(
		"bestvideo[height<=%[1]s][ext=%[2]s]+bestaudio[ext=%[3]s]/best[height<=%[1]s][ext=%[2]s]/best",
		s.Quality, consts.VideoContainer, consts.AudioContainer,
	)
}
