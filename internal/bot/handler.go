// Package bot answers the Telegram commands that hand out the mini app
// launch button. It reads and writes no state.
package bot

import (
	"context"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Sender delivers a message. *tgbot.Bot satisfies it.
type Sender interface {
	SendMessage(ctx context.Context, params *tgbot.SendMessageParams) (*models.Message, error)
}

// Handler dispatches /start, /help and /app.
type Handler struct {
	webAppURL string
	logger    *zap.Logger
}

// NewHandler creates a Handler whose buttons open webAppURL.
func NewHandler(webAppURL string, logger *zap.Logger) *Handler {
	return &Handler{webAppURL: webAppURL, logger: logger}
}

// Command extracts the command name from a message, without the leading
// slash or a trailing @botname. It returns "" for anything else.
func Command(update *models.Update) string {
	if update == nil || update.Message == nil {
		return ""
	}
	text := update.Message.Text
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	name := strings.Fields(text)[0][1:]
	if at := strings.IndexByte(name, '@'); at >= 0 {
		name = name[:at]
	}
	return name
}

// Handles reports whether update is one of the supported commands.
func (h *Handler) Handles(update *models.Update) bool {
	switch Command(update) {
	case "start", "help", "app":
		return true
	}
	return false
}

// Handle answers a supported command. Delivery failures are logged only.
func (h *Handler) Handle(ctx context.Context, sender Sender, update *models.Update) {
	var params *tgbot.SendMessageParams
	chatID := update.Message.Chat.ID

	cmd := Command(update)
	switch cmd {
	case "start":
		firstName := ""
		if update.Message.From != nil {
			firstName = update.Message.From.FirstName
		}
		params = StartMessage(chatID, firstName, h.webAppURL)
	case "help":
		params = HelpMessage(chatID, h.webAppURL)
	case "app":
		params = AppMessage(chatID, h.webAppURL)
	default:
		return
	}

	if _, err := sender.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send command reply",
			zap.String("command", cmd), zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}
	h.logger.Info("Command handled", zap.String("command", cmd), zap.Int64("chat_id", chatID))
}

// Register attaches the command handler to b.
func (h *Handler) Register(b *tgbot.Bot) {
	b.RegisterHandlerMatchFunc(h.Handles, func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		h.Handle(ctx, b, update)
	})
}

// Ignore is the default handler for updates that are not commands.
func (h *Handler) Ignore(_ context.Context, _ *tgbot.Bot, update *models.Update) {
	if update != nil {
		h.logger.Debug("Ignoring update", zap.Int64("update_id", update.ID))
	}
}
