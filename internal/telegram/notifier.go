// Package telegram pushes moderation events to the admin's Telegram chat.
// The notifier is send-only: moderation itself stays on the dashboard.
package telegram

import (
	"fmt"
	"log"

	"askmego/backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Notifier struct {
	BotAPI *tgbotapi.BotAPI
	ChatID int64
}

// NewNotifier authorizes the bot and binds it to the admin chat.
func NewNotifier(token string, chatID int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to start telegram bot: %w", err)
	}
	log.Printf("INFO: Telegram notifier authorized as @%s", bot.Self.UserName)
	return &Notifier{BotAPI: bot, ChatID: chatID}, nil
}

// NotifyNewRequest announces a freshly filed request.
func (n *Notifier) NotifyNewRequest(projectName string, req *models.Request) {
	text := fmt.Sprintf("🆕 *%s*\n%s filed a new request: %s", projectName, req.Username, req.Title)
	n.send(text)
}

// NotifyUserMessage announces a visitor reply in an existing thread.
func (n *Notifier) NotifyUserMessage(req *models.Request, msg *models.Message) {
	text := fmt.Sprintf("💬 %s replied on request #%d (%s):\n%s", msg.SenderName, req.ID, req.Title, msg.Body)
	n.send(text)
}

func (n *Notifier) send(text string) {
	msg := tgbotapi.NewMessage(n.ChatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := n.BotAPI.Send(msg); err != nil {
		log.Printf("ERROR: Failed to send telegram notification: %v", err)
	}
}
