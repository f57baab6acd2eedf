// Package errors contains domain-specific errors for the grab domain
package errors

import (
	pkgerrors "github.com/Ethiocoderss/tgbot/pkg/errors"
)

// Domain errors for download operations. The extractor client maps raw
// collaborator failures onto these so the delivery layer can pick a
// user-facing message without sniffing error strings itself.
var (
	// ErrVideoUnavailable covers private, deleted and region-blocked videos
	ErrVideoUnavailable = pkgerrors.NewUnavailableError("video is private, deleted or unavailable")

	// ErrInvalidURL means the submitted text is not a link the extractor accepts
	ErrInvalidURL = pkgerrors.NewValidationError("not a valid video link")

	// ErrExtraction covers all other structured extractor failures
	ErrExtraction = pkgerrors.NewExternalError("extractor failed to process the link")

	// ErrDownloadFailed covers structured failures during fetch+merge
	ErrDownloadFailed = pkgerrors.NewExternalError("download failed")

	// ErrNoFormats means the resolved format list produced no menu buttons
	ErrNoFormats = pkgerrors.NewNotFoundError("no suitable download formats")

	// ErrMalformedToken means a callback token did not parse into kind:id:quality
	ErrMalformedToken = pkgerrors.NewValidationError("malformed callback token")
)
