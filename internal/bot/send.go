package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// sendMessage sends a message, logging delivery failures. The nil api guard
// lets handler tests run without a Telegram connection.
func (b *Bot) sendMessage(msg tgbotapi.Chattable) {
	if b.api == nil {
		return // For testing
	}
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message", zap.Error(err))
	}
}

// answerCallback acknowledges a callback query to clear the loading state
func (b *Bot) answerCallback(queryID, text string) {
	if b.api == nil {
		return // For testing
	}
	if _, err := b.api.Request(tgbotapi.NewCallback(queryID, text)); err != nil {
		b.logger.Error("Failed to answer callback query", zap.Error(err))
	}
}

// SendText sends a plain text message to a chat. Used by the reminder job.
func (b *Bot) SendText(chatID int64, text string) error {
	if b.api == nil {
		return nil // For testing
	}
	_, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// SendProductPhoto resends a previously uploaded photo with a caption. Used by
// the reminder job.
func (b *Bot) SendProductPhoto(chatID int64, photoFileID, caption string) error {
	if b.api == nil {
		return nil // For testing
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(photoFileID))
	photo.Caption = caption
	_, err := b.api.Send(photo)
	return err
}
