package bot

import (
	"context"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"gembot/internal/llm"
	"gembot/internal/metrics"
	"gembot/internal/storage"
)

type Bot interface {
	Start(ctx context.Context) error
	Send(chatID int64, message string) error
}

// telegramAPI is the slice of the Bot API client the relay uses.
// *tgbotapi.BotAPI satisfies it; tests inject a recorder.
type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type Config struct {
	Token string
	// Timeout is the idle window per outstanding turn request. The
	// session ends when the user stays silent this long.
	Timeout time.Duration
	// LogConflicts raises suppressed double-command conflicts from
	// debug to warn level.
	LogConflicts bool
}

type Telegram struct {
	api           telegramAPI
	token         string
	model         llm.LLM
	archive       *storage.Client  // optional
	metrics       *metrics.Metrics // optional
	conversations *registry
	httpClient    *http.Client
	timeout       time.Duration
	logConflicts  bool
}
