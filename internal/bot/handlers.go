package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// HandleUpdate dispatches a single inbound update
func (b *Bot) HandleUpdate(update tgbotapi.Update) {
	if update.Message != nil {
		b.handleMessage(update.Message)
	}
	if update.CallbackQuery != nil {
		b.handleCallbackQuery(update.CallbackQuery)
	}
}

// handleMessage processes a single message
func (b *Bot) handleMessage(message *tgbotapi.Message) {
	// Recover from panics to prevent bot crashes
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in handleMessage", zap.Any("panic", r))
			msg := tgbotapi.NewMessage(message.Chat.ID, "An error occurred while processing your request. Please try again.")
			b.sendMessage(msg)
		}
	}()

	ctx := context.Background()

	if len(message.Photo) > 0 {
		b.handlePhoto(message)
		return
	}

	if message.IsCommand() {
		switch message.Command() {
		case "start":
			b.handleStart(message)
		default:
			msg := tgbotapi.NewMessage(message.Chat.ID, "Unknown command. Use /start to begin.")
			b.sendMessage(msg)
		}
		return
	}

	switch message.Text {
	case labelAddProduct:
		b.handleAddProduct(message)
	case labelProductList:
		b.handleProductList(ctx, message)
	case labelHelp:
		b.handleHelp(message)
	default:
		// Any other text is a date entry, interpreted in the context of the
		// chat's registration flow if one is active
		b.handleDateInput(ctx, message)
	}
}

// handleCallbackQuery processes inline keyboard button clicks
func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	// Recover from panics
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in handleCallbackQuery", zap.Any("panic", r))
		}
	}()

	if query.Data != callbackReturnable || query.Message == nil {
		b.answerCallback(query.ID, "")
		return
	}

	b.handleReturnableSelected(query)
}
