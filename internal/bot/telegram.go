package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"gembot/internal/llm"
	"gembot/internal/logger"
	"gembot/internal/metrics"
	"gembot/internal/storage"
)

const maxImageSize = 20 * 1024 * 1024 // 20MB limit for images

func NewTelegram(cfg Config, model llm.LLM, archive *storage.Client, m *metrics.Metrics) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}

	return newTelegram(api, cfg, model, archive, m), nil
}

func newTelegram(api telegramAPI, cfg Config, model llm.LLM, archive *storage.Client, m *metrics.Metrics) *Telegram {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Minute
	}

	return &Telegram{
		api:           api,
		token:         cfg.Token,
		model:         model,
		archive:       archive,
		metrics:       m,
		conversations: newRegistry(),
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		timeout:       timeout,
		logConflicts:  cfg.LogConflicts,
	}
}

func (t *Telegram) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := t.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			t.handleUpdate(ctx, update)
		}
	}
}

func (t *Telegram) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		if !t.conversations.DeliverCallback(update.CallbackQuery) {
			// press on a button from a finished conversation; just
			// clear the client's spinner
			t.answerCallback(update.CallbackQuery.ID)
		}
		return
	}

	if update.Message == nil {
		return
	}

	msg := update.Message

	// an open conversation consumes everything from its chat,
	// including repeated commands
	if t.conversations.DeliverMessage(msg) {
		return
	}

	switch {
	case matchCommand(msg.Text, "/chat"):
		go t.handleChat(ctx, msg)
	case matchCommand(msg.Text, "/image"):
		go t.handleImage(ctx, msg)
	case matchCommand(msg.Text, "/start"), matchCommand(msg.Text, "/help"):
		go t.handleStart(ctx, msg)
	}
}

// Send delivers a plain proactive message, used by the heartbeat.
func (t *Telegram) Send(chatID int64, message string) error {
	_, err := t.sendPlain(chatID, message)
	if err != nil {
		logger.Error("proactive send failed", "error", err, "chatID", chatID)
	}
	return err
}

func (t *Telegram) sendPlain(chatID int64, text string) (tgbotapi.Message, error) {
	return t.api.Send(tgbotapi.NewMessage(chatID, text))
}

func (t *Telegram) sendMarkdown(chatID int64, text string) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	return t.api.Send(msg)
}

func (t *Telegram) sendHTML(chatID int64, text string) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return t.api.Send(msg)
}

func (t *Telegram) deleteMessage(chatID int64, messageID int) {
	if _, err := t.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		logger.Debug("delete message failed", "error", err, "chat", chatID)
	}
}

func (t *Telegram) answerCallback(callbackID string) {
	if _, err := t.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		logger.Debug("answer callback failed", "error", err)
	}
}

func (t *Telegram) downloadFile(fileID string) ([]byte, string, error) {
	file, err := t.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, "", err
	}

	url := file.Link(t.token)

	resp, err := t.httpClient.Get(url)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return nil, "", err
	}

	mediaType := http.DetectContentType(data)

	return data, mediaType, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}

	return s[:max] + "..."
}
