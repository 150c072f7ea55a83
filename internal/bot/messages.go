package bot

import (
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const (
	startButtonText = "🏃‍♂️ Открыть MisterMo App"
	helpButtonText  = "🏃‍♂️ Открыть App"
	appPromptText   = "Нажмите кнопку ниже, чтобы открыть приложение:"
)

const welcomeTemplate = `🎯 *Добро пожаловать в MisterMo*, %NAME%!

Система Морачковского - ваш персональный подход к здоровью и питанию на основе генетических данных.

🔹 Персональные программы питания
🔹 Сканер продуктов и калорий
🔹 Дыхательные практики
🔹 Тренировки и упражнения
🔹 Отслеживание прогресса

Нажмите кнопку ниже, чтобы начать:`

const helpText = `📱 *Команды бота:*

/start - Запустить приложение
/help - Показать эту справку
/app - Открыть приложение

🔗 Для полного функционала используйте Web App!`

// Legacy Markdown only honours these escapes outside entities, so the name
// is kept out of the bold span.
var markdownEscaper = strings.NewReplacer("_", `\_`, "*", `\*`, "`", "\\`", "[", `\[`)

// webAppKeyboard is a single button that opens the mini app.
func webAppKeyboard(text, url string) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: text, WebApp: &models.WebAppInfo{URL: url}}},
		},
	}
}

// StartMessage greets the user by first name.
func StartMessage(chatID int64, firstName, webAppURL string) *tgbot.SendMessageParams {
	return &tgbot.SendMessageParams{
		ChatID:      chatID,
		Text:        strings.Replace(welcomeTemplate, "%NAME%", markdownEscaper.Replace(firstName), 1),
		ParseMode:   models.ParseModeMarkdownV1,
		ReplyMarkup: webAppKeyboard(startButtonText, webAppURL),
	}
}

// HelpMessage lists the commands.
func HelpMessage(chatID int64, webAppURL string) *tgbot.SendMessageParams {
	return &tgbot.SendMessageParams{
		ChatID:      chatID,
		Text:        helpText,
		ParseMode:   models.ParseModeMarkdownV1,
		ReplyMarkup: webAppKeyboard(helpButtonText, webAppURL),
	}
}

// AppMessage is a plain prompt with the launch button.
func AppMessage(chatID int64, webAppURL string) *tgbot.SendMessageParams {
	return &tgbot.SendMessageParams{
		ChatID:      chatID,
		Text:        appPromptText,
		ReplyMarkup: webAppKeyboard(startButtonText, webAppURL),
	}
}
