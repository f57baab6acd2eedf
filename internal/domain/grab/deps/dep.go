// Package deps contains interface definitions for the grab domain dependencies
package deps

import (
	"context"

	"github.com/Ethiocoderss/tgbot/internal/domain/grab/entities"
)

// Extractor defines the extraction/download collaborator
type Extractor interface {
	// Probe resolves metadata and available formats for a URL, no media fetch
	Probe(ctx context.Context, url string) (*entities.VideoInfo, error)

	// Fetch downloads and merges the streams matched by the format selector
	// into outputPath. Blocking; no timeout of its own.
	Fetch(ctx context.Context, url, selector, outputPath string) error
}

// SessionStore defines per-chat state shared between the link and selection handlers
type SessionStore interface {
	// Remember stores the last resolved title for a chat, overwriting any
	// previous one
	Remember(chatID int64, title string)

	// LastTitle returns the remembered title for a chat
	LastTitle(chatID int64) (string, bool)
}

// DownloadEventProducer defines interface for publishing download lifecycle events
type DownloadEventProducer interface {
	// SendDownloadCompleted publishes a completed-download event
	SendDownloadCompleted(ctx context.Context, requesterID int64, sel entities.Selection, path string) error

	// SendDownloadFailed publishes a failed-download event
	SendDownloadFailed(ctx context.Context, requesterID int64, sel entities.Selection, cause error) error

	// Close closes the producer
	Close() error
}
