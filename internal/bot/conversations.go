package bot

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"shelfwatch/internal/models"
)

// handleAddProduct starts the registration flow for a chat
func (b *Bot) handleAddProduct(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	b.setSession(chatID, session{Step: stepAwaitingPhoto, StartedAt: b.now()})

	msg := tgbotapi.NewMessage(chatID, "Send a photo of the product 🫡")
	b.sendMessage(msg)
}

// handlePhoto stores the photo reference and offers the returnable category.
// A photo outside an active registration flow is ignored.
func (b *Bot) handlePhoto(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	sess, ok := b.session(chatID)
	if !ok || sess.Step != stepAwaitingPhoto {
		return
	}

	// Telegram sends several resolutions, the last one is the largest
	photo := message.Photo[len(message.Photo)-1]
	sess.Step = stepAwaitingReturnableOrDate
	sess.PhotoFileID = photo.FileID
	b.setSession(chatID, sess)

	msg := tgbotapi.NewMessage(chatID,
		"If the product is returnable, press the button below, otherwise enter the expiration date as dd.mm.yyyy.")
	msg.ReplyMarkup = returnableKeyboard()
	b.sendMessage(msg)
}

// handleReturnableSelected processes the "Returnable category" button press
func (b *Bot) handleReturnableSelected(query *tgbotapi.CallbackQuery) {
	chatID := query.Message.Chat.ID

	sess, ok := b.session(chatID)
	if !ok || sess.PhotoFileID == "" {
		// The pending photo was lost or already consumed; restart from the photo step
		b.answerCallback(query.ID, "")
		b.setSession(chatID, session{Step: stepAwaitingPhoto, StartedAt: b.now()})
		msg := tgbotapi.NewMessage(chatID, "Something went wrong. Please send the product photo again.")
		b.sendMessage(msg)
		return
	}

	b.answerCallback(query.ID, "Returnable category selected")

	sess.Step = stepAwaitingReturnableDate
	b.setSession(chatID, sess)

	msg := tgbotapi.NewMessage(chatID, "Enter the expiration date as dd.mm.yyyy.")
	b.sendMessage(msg)
}

// handleDateInput routes free text based on the chat's registration state
func (b *Bot) handleDateInput(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	sess, ok := b.session(chatID)
	if !ok {
		// No flow in progress: still validate so a typo gets feedback, but
		// never fabricate a product without a photo on record
		if _, err := parseExpirationDate(message.Text); err != nil {
			msg := tgbotapi.NewMessage(chatID, "Invalid date. Please enter the date as dd.mm.yyyy.")
			b.sendMessage(msg)
			return
		}
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("To add a product, press \"%s\" first.", labelAddProduct))
		b.sendMessage(msg)
		return
	}

	switch sess.Step {
	case stepAwaitingPhoto:
		// Only a photo advances this state; re-prompt and stay put
		msg := tgbotapi.NewMessage(chatID, "Send a photo of the product 🫡")
		b.sendMessage(msg)
	case stepAwaitingReturnableOrDate:
		b.commitProduct(ctx, message, sess, false)
	case stepAwaitingReturnableDate:
		b.commitProduct(ctx, message, sess, true)
	}
}

// commitProduct parses and validates the entered date and persists the product.
// Parse and validation failures keep the current state so the user can retry;
// a storage failure clears the session so the chat never ends up in limbo.
func (b *Bot) commitProduct(ctx context.Context, message *tgbotapi.Message, sess session, returnable bool) {
	chatID := message.Chat.ID

	expDate, err := parseExpirationDate(message.Text)
	if err != nil {
		msg := tgbotapi.NewMessage(chatID, "Invalid date. Please enter the date as dd.mm.yyyy.")
		b.sendMessage(msg)
		return
	}

	today := models.DateOnly(b.now().In(b.loc))
	if err := validateExpirationDate(expDate, returnable, today); err != nil {
		if errors.Is(err, errDateInPast) {
			msg := tgbotapi.NewMessage(chatID,
				"The expiration or return date cannot be in the past. Please enter a valid date.")
			b.sendMessage(msg)
			return
		}
		b.logger.Error("Date validation failed", zap.Error(err))
		return
	}

	// The nominal date is persisted as entered; the return window is applied
	// only when validating and when the reminder job scans
	product := models.Product{
		OwnerID:        message.From.ID,
		PhotoFileID:    sess.PhotoFileID,
		ExpirationDate: expDate,
		Returnable:     returnable,
	}

	id, err := b.db.CreateProduct(ctx, product)
	if err != nil {
		b.logger.Error("Failed to save product", zap.Int64("chat_id", chatID), zap.Error(err))
		b.clearSession(chatID)
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Failed to save the product: %v", err))
		b.sendMessage(msg)
		b.sendMainMenu(chatID)
		return
	}

	b.clearSession(chatID)
	b.logger.Info("Product registered",
		zap.Int64("product_id", id),
		zap.Int64("owner_id", product.OwnerID),
		zap.String("expiration_date", expDate.Format(models.DateLayout)),
		zap.Bool("returnable", returnable),
	)

	msg := tgbotapi.NewMessage(chatID, "Product added! 🤗")
	b.sendMessage(msg)
	b.sendMainMenu(chatID)
}
