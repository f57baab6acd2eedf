// Package telegram contains Telegram delivery handlers
package telegram

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/Ethiocoderss/tgbot/internal/domain/grab/consts"
	"github.com/Ethiocoderss/tgbot/internal/domain/grab/dto"
	"github.com/Ethiocoderss/tgbot/internal/domain/grab/entities"
	graberrors "github.com/Ethiocoderss/tgbot/internal/domain/grab/errors"
	"github.com/Ethiocoderss/tgbot/internal/domain/grab/usecase/buissines"
	pkgerrors "github.com/Ethiocoderss/tgbot/pkg/errors"
	"github.com/Ethiocoderss/tgbot/pkg/format"
)

// Status and error texts shown to the user
const (
	msgProcessing  = "⏳ Processing link..."
	msgPreparing   = "⏳ Preparing download..."
	msgUploading   = "🚀 Uploading to Telegram..."
	msgNoFormats   = "Sorry, no suitable download formats were found."
	msgUnavailable = "❌ Failed: This video is private, has been deleted, or is unavailable."
	msgInvalidLink = "❌ This doesn't look like a valid link. Please try again."
	msgExtraction  = "❌ Failed to process the link. The video may be region-locked or unsupported."
	msgUnexpected  = "❌ An unexpected error occurred. Please try again later."
)

// Pre-escaped MarkdownV2 failure texts for the selection flow
const (
	msgDownloadFailedMD = "❌ *Download Failed*\n\nThis could be due to a YouTube error or a protected video\\."
	msgUnexpectedMD     = "❌ *An Unexpected Error Occurred*\n\nPlease try again later\\."
)

// Handlers contains Telegram update handlers for the grab domain
type Handlers struct {
	uc            *buissines.UseCase
	bot           *tgbot.Bot
	downloadDir   string
	uploadTimeout time.Duration
	logger        zerolog.Logger
}

// NewHandlers creates new Telegram handlers
func NewHandlers(uc *buissines.UseCase, bot *tgbot.Bot, downloadDir string, uploadTimeout time.Duration, logger zerolog.Logger) *Handlers {
	return &Handlers{
		uc:            uc,
		bot:           bot,
		downloadDir:   downloadDir,
		uploadTimeout: uploadTimeout,
		logger:        logger,
	}
}

// HandleStart handles /start command
func (h *Handlers) HandleStart(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	name := "there"
	if update.Message.From != nil && update.Message.From.FirstName != "" {
		name = update.Message.From.FirstName
	}

	_, err := h.bot.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   fmt.Sprintf("Hi %s! 👋 Send me a YouTube link to get started.", name),
	})
	if err != nil {
		h.logger.Error().Err(err).Int64("chat_id", update.Message.Chat.ID).Msg("Failed to send greeting")
	}
}

// HandleLink handles a plain text message assumed to be a video URL. The text
// is not validated here; the extractor rejects anything it cannot resolve.
func (h *Handlers) HandleLink(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	chatID := update.Message.Chat.ID

	placeholder, err := h.bot.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: chatID,
		Text:   msgProcessing,
	})
	if err != nil {
		h.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send placeholder message")
		return
	}

	menu, err := h.uc.ResolveLink(ctx, &dto.ResolveLinkRequest{
		ChatID: chatID,
		URL:    update.Message.Text,
	})
	if err != nil {
		h.editText(ctx, chatID, placeholder.ID, resolveErrorMessage(err))
		return
	}

	// The menu replaces the placeholder entirely
	if _, err := h.bot.DeleteMessage(ctx, &tgbot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: placeholder.ID,
	}); err != nil {
		h.logger.Warn().Err(err).Int64("chat_id", chatID).Msg("Failed to delete placeholder message")
	}

	h.sendMenu(ctx, chatID, menu)
}

// HandleSelection handles a button press carrying a callback token
func (h *Handlers) HandleSelection(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	query := update.CallbackQuery
	if query == nil {
		return
	}

	// The transport requires a prompt acknowledgement regardless of outcome
	if _, err := h.bot.AnswerCallbackQuery(ctx, &tgbot.AnswerCallbackQueryParams{
		CallbackQueryID: query.ID,
	}); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to answer callback query")
	}

	msg := query.Message.Message
	if msg == nil {
		h.logger.Warn().Str("data", query.Data).Msg("Callback for inaccessible message, dropping")
		return
	}
	chatID := msg.Chat.ID

	sel, err := entities.ParseSelection(query.Data)
	if err != nil {
		h.logger.Error().Err(err).Str("data", query.Data).Msg("Rejected malformed callback token")
		h.editStatus(ctx, chatID, msg.ID, msgUnexpectedMD, models.ParseModeMarkdown)
		return
	}

	requesterID := query.From.ID
	path := filepath.Join(h.downloadDir, sel.FileName(requesterID))

	// Guaranteed cleanup of the local artifact on every exit path, including
	// the one where it was never created
	defer h.removeFile(path)

	// Best effort: the menu message may already be gone
	h.editStatus(ctx, chatID, msg.ID, msgPreparing, "")

	res, err := h.uc.Download(ctx, &dto.DownloadRequest{
		ChatID:      chatID,
		RequesterID: requesterID,
		Kind:        sel.Kind,
		VideoID:     sel.VideoID,
		Quality:     sel.Quality,
	}, path)
	if err != nil {
		h.editStatus(ctx, chatID, msg.ID, selectionErrorMessage(err), models.ParseModeMarkdown)
		return
	}

	h.editStatus(ctx, chatID, msg.ID, msgUploading, "")

	if err := h.upload(ctx, chatID, sel, res); err != nil {
		h.logger.Error().Err(err).
			Int64("chat_id", chatID).
			Str("video_id", sel.VideoID).
			Msg("Failed to upload file")
		h.editStatus(ctx, chatID, msg.ID, msgUnexpectedMD, models.ParseModeMarkdown)
		return
	}

	// The selection menu is no longer needed once the media is delivered
	if _, err := h.bot.DeleteMessage(ctx, &tgbot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: msg.ID,
	}); err != nil {
		h.logger.Warn().Err(err).Int64("chat_id", chatID).Msg("Failed to delete selection message")
	}
}

// sendMenu sends the format selection menu, as a photo when a thumbnail is
// available and as plain text otherwise
func (h *Handlers) sendMenu(ctx context.Context, chatID int64, menu *dto.LinkMenu) {
	caption := "*" + format.EscapeMarkdown(menu.Title) + "*"
	markup := buildKeyboard(menu.Options)

	var err error
	if menu.ThumbnailURL != "" {
		_, err = h.bot.SendPhoto(ctx, &tgbot.SendPhotoParams{
			ChatID:      chatID,
			Photo:       &models.InputFileString{Data: menu.ThumbnailURL},
			Caption:     caption,
			ParseMode:   models.ParseModeMarkdown,
			ReplyMarkup: markup,
		})
	} else {
		_, err = h.bot.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID:      chatID,
			Text:        caption,
			ParseMode:   models.ParseModeMarkdown,
			ReplyMarkup: markup,
		})
	}

	if err != nil {
		h.logger.Error().Err(err).
			Int64("chat_id", chatID).
			Str("video_id", menu.VideoID).
			Msg("Failed to send format menu")
	}
}

// upload delivers the produced file as audio or video with a generous timeout
func (h *Handlers) upload(ctx context.Context, chatID int64, sel entities.Selection, res *dto.DownloadResult) error {
	file, err := os.Open(res.Path)
	if err != nil {
		return fmt.Errorf("failed to open downloaded file: %w", err)
	}
	defer file.Close()

	uploadCtx, cancel := context.WithTimeout(ctx, h.uploadTimeout)
	defer cancel()

	name := filepath.Base(res.Path)

	if sel.Kind == consts.KindAudio {
		_, err = h.bot.SendAudio(uploadCtx, &tgbot.SendAudioParams{
			ChatID: chatID,
			Audio:  &models.InputFileUpload{Filename: name, Data: file},
			Title:  res.Title,
		})
	} else {
		_, err = h.bot.SendVideo(uploadCtx, &tgbot.SendVideoParams{
			ChatID:            chatID,
			Video:             &models.InputFileUpload{Filename: name, Data: file},
			Caption:           res.Title,
			SupportsStreaming: true,
		})
	}
	if err != nil {
		return fmt.Errorf("failed to send media: %w", err)
	}

	h.logger.Info().
		Int64("chat_id", chatID).
		Str("video_id", sel.VideoID).
		Str("kind", sel.Kind).
		Msg("Media uploaded successfully")

	return nil
}

// editStatus edits the selection message in place. The menu message carries a
// caption when it was sent with a thumbnail and plain text otherwise, so both
// edits are attempted. Failures are swallowed: the message may already be
// deleted and the flow must continue regardless.
func (h *Handlers) editStatus(ctx context.Context, chatID int64, messageID int, text string, parseMode models.ParseMode) {
	_, capErr := h.bot.EditMessageCaption(ctx, &tgbot.EditMessageCaptionParams{
		ChatID:    chatID,
		MessageID: messageID,
		Caption:   text,
		ParseMode: parseMode,
	})
	if capErr == nil {
		return
	}

	_, txtErr := h.bot.EditMessageText(ctx, &tgbot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
		ParseMode: parseMode,
	})
	if txtErr != nil {
		h.logger.Debug().
			AnErr("caption_err", capErr).
			AnErr("text_err", txtErr).
			Int64("chat_id", chatID).
			Msg("Status edit failed, continuing")
	}
}

// editText edits a plain text message, logging failures
func (h *Handlers) editText(ctx context.Context, chatID int64, messageID int, text string) {
	if _, err := h.bot.EditMessageText(ctx, &tgbot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
	}); err != nil {
		h.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to edit status message")
	}
}

// removeFile deletes the transient download artifact if it exists
func (h *Handlers) removeFile(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := os.Remove(path); err != nil {
		h.logger.Error().Err(err).Str("path", path).Msg("Failed to clean up file")
		return
	}
	h.logger.Info().Str("path", path).Msg("Cleaned up file")
}

// buildKeyboard renders one button per menu option, one option per row
func buildKeyboard(options []dto.MenuOption) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(options))
	for _, opt := range options {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: opt.Label, CallbackData: opt.Token},
		})
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// resolveErrorMessage maps link resolution failures onto user-facing text
func resolveErrorMessage(err error) string {
	switch {
	case pkgerrors.IsNotFoundError(err):
		return msgNoFormats
	case pkgerrors.IsUnavailableError(err):
		return msgUnavailable
	case pkgerrors.IsValidationError(err):
		return msgInvalidLink
	case pkgerrors.IsExternalError(err):
		return msgExtraction
	default:
		return msgUnexpected
	}
}

// selectionErrorMessage maps download failures onto pre-escaped MarkdownV2 text
func selectionErrorMessage(err error) string {
	if err == graberrors.ErrDownloadFailed {
		return msgDownloadFailedMD
	}
	return msgUnexpectedMD
}
