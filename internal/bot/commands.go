package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"shelfwatch/internal/models"
)

// handleStart shows the welcome message and the main menu
func (b *Bot) handleStart(message *tgbotapi.Message) {
	text := `Hi 👋 This bot reminds you when your products are about to expire.
To add a product, press the button below.`

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	b.sendMessage(msg)
	b.sendMainMenu(message.Chat.ID)
}

// handleHelp shows the command summary
func (b *Bot) handleHelp(message *tgbotapi.Message) {
	text := `Bot commands:
/start - Start working with the bot
Add new product - Register a product with a photo and expiration date
Product list - Show all your products`

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	b.sendMessage(msg)
	b.sendMainMenu(message.Chat.ID)
}

// handleProductList shows all products registered by the requesting user
func (b *Bot) handleProductList(ctx context.Context, message *tgbotapi.Message) {
	products, err := b.db.ListByOwner(ctx, message.From.ID)
	if err != nil {
		msg := tgbotapi.NewMessage(message.Chat.ID, fmt.Sprintf("Error: %v", err))
		b.sendMessage(msg)
		return
	}

	if len(products) == 0 {
		msg := tgbotapi.NewMessage(message.Chat.ID, "You have no products yet.")
		b.sendMessage(msg)
		return
	}

	var text strings.Builder
	text.WriteString("Your products:\n")
	for _, p := range products {
		text.WriteString(formatProductLine(p))
		text.WriteByte('\n')
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, text.String())
	b.sendMessage(msg)
}

func formatProductLine(p models.Product) string {
	label := "non-returnable"
	if p.Returnable {
		label = "returnable"
	}
	return fmt.Sprintf("ID: %d, expires: %s, %s", p.ID, p.ExpirationDate.Format(models.DateLayout), label)
}
