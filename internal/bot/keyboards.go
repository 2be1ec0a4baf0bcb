package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Main menu labels. Incoming text equal to one of these routes to the
// corresponding flow; anything else is treated as a date entry.
const (
	labelAddProduct  = "Add new product"
	labelProductList = "Product list"
	labelHelp        = "Help"

	labelReturnable    = "Returnable category"
	callbackReturnable = "return_item"
)

// mainMenuKeyboard builds the persistent reply keyboard shown after every
// completed action
func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(labelAddProduct),
			tgbotapi.NewKeyboardButton(labelProductList),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(labelHelp),
		),
	)
}

// returnableKeyboard builds the single-button inline keyboard offered after a
// product photo arrives
func returnableKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(labelReturnable, callbackReturnable),
		),
	)
}

// sendMainMenu shows the main menu keyboard
func (b *Bot) sendMainMenu(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "Choose an action:")
	msg.ReplyMarkup = mainMenuKeyboard()
	b.sendMessage(msg)
}
