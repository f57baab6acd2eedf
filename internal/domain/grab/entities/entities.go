// Package entities contains domain entities
package entities

// VideoInfo is the metadata resolved for a submitted link
type VideoInfo struct {
	ID           string
	Title        string
	ThumbnailURL string
	Formats      []Format
}

// Format is one selectable media stream as reported by the extractor.
// Sizes are zero when the extractor reports neither exact nor approximate bytes.
type Format struct {
	ID         string
	Ext        string
	VideoCodec string
	AudioCodec string
	Height     int
	Size       int64
}

// HasVideo reports whether the format carries a video track
func (f Format) HasVideo() bool {
	return f.VideoCodec != "" && f.VideoCodec != "none"
}

// HasAudio reports whether the format carries an audio track
func (f Format) HasAudio() bool {
	return f.AudioCodec != "" && f.AudioCodec != "none"
}

// Session holds per-chat state remembered between the link and selection steps
type Session struct {
	LastTitle string
}
