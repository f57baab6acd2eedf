// Package dto contains data transfer objects for the grab domain
package dto

// ResolveLinkRequest represents a submitted video link
type ResolveLinkRequest struct {
	ChatID int64  `json:"chatId"`
	URL    string `json:"url"`
}

// MenuOption is one selectable entry in the format menu
type MenuOption struct {
	Label string `json:"label"`
	Token string `json:"token"`
}

// LinkMenu is the rendered selection menu for a resolved link
type LinkMenu struct {
	VideoID      string       `json:"videoId"`
	Title        string       `json:"title"`
	ThumbnailURL string       `json:"thumbnailUrl"`
	Options      []MenuOption `json:"options"`
}

// DownloadRequest represents a confirmed menu selection
type DownloadRequest struct {
	ChatID      int64  `json:"chatId"`
	RequesterID int64  `json:"requesterId"`
	Kind        string `json:"kind"`
	VideoID     string `json:"videoId"`
	Quality     string `json:"quality"`
}

// DownloadResult is the produced local artifact plus its display title
type DownloadResult struct {
	Path  string `json:"path"`
	Title string `json:"title"`
}

// DownloadEvent is the Kafka payload published after a download attempt
type DownloadEvent struct {
	RequesterID int64  `json:"requester_id"`
	VideoID     string `json:"video_id"`
	Kind        string `json:"kind"`
	Path        string `json:"path,omitempty"`
	Error       string `json:"error,omitempty"`
	FinishedAt  string `json:"finished_at"`
}
