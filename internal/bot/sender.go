package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"devtracker/internal/tracker"
)

// Sender owns the telegram API client and the owner chat. It is created
// before the store so it can serve as the store's Notifier.
type Sender struct {
	api    *tgbotapi.BotAPI
	chatID int64
	log    *zap.Logger
}

func NewSender(token string, chatID int64, log *zap.Logger) (*Sender, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	log.Info("bot authorized", zap.String("account", api.Self.UserName))
	return &Sender{api: api, chatID: chatID, log: log}, nil
}

// Notify sends a mutation confirmation to the owner chat.
func (s *Sender) Notify(_ context.Context, n tracker.Notice) {
	if err := s.sendText(s.chatID, "✅ "+escape(n.String())); err != nil {
		s.log.Warn("send confirmation", zap.Error(err))
	}
}

// SendDigest delivers a rendered digest to the owner chat.
func (s *Sender) SendDigest(_ context.Context, text string) error {
	return s.sendText(s.chatID, text)
}

func (s *Sender) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := s.api.Send(msg)
	return err
}

func (s *Sender) sendTextWithRemove(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	_, err := s.api.Send(msg)
	return err
}

func (s *Sender) sendWithReplyMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := s.api.Send(msg)
	return err
}

func (s *Sender) ack(callbackID string) {
	if _, err := s.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		s.log.Warn("callback ack", zap.Error(err))
	}
}
