// Package consts contains constants for the grab domain
package consts

// Callback token kinds, also used as handler registration prefixes
const (
	KindVideo = "video"
	KindAudio = "audio"
)

// Containers requested from the extractor
const (
	VideoContainer = "mp4"
	AudioContainer = "m4a"
)

// Kafka topics for download lifecycle events
const (
	TopicDownloadCompleted = "downloads.completed"
	TopicDownloadFailed    = "downloads.failed"
)
