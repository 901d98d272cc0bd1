package bot

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"gembot/internal/imaging"
	"gembot/internal/logger"
	"gembot/internal/metrics"
	"gembot/internal/session"
)

const (
	chatPromptText   = "Provide your input to Gemini Bot..."
	imagePromptText  = "Send me an image, and I'll tell you what is shown inside."
	thinkingText     = "Received! I'm thinking about the response..."
	chatResetText    = "Conversation will be reset. Type /chat to start a new one!"
	imageResetText   = "Conversation will be reset. Type /image to send me another image."
	invalidImageText = "Input not valid. Please send me an image after using the /image command."
	timeoutText      = "<b>Conversation ended</b>\nIt's been too long since your last response."
	failureText      = "<b>Conversation ended</b>\nSomething went wrong."
	captionPrompt    = "What is shown in this image?"
)

const startText = `Hello there! I'm Gemini, your friendly chatbot. I can answer your questions in a conversational manner and even recognize the contents of images. Let's get started!

/chat: Initiate a chat with me.
/image: Share an image and learn about its contents.

Feel free to explore and ask me anything!`

// matchCommand reports whether the text starts with the command,
// case-insensitive.
func matchCommand(text, command string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(text)), command)
}

func (t *Telegram) handleChat(ctx context.Context, trigger *tgbotapi.Message) {
	chatID := trigger.Chat.ID

	conv, err := t.conversations.Open(chatID, t.timeout)
	if err != nil {
		t.logConflict(chatID)
		return
	}
	defer t.conversations.Close(chatID)

	sess := session.New(chatID)
	t.observeOpened("chat")
	logger.Info("chat session opened", "session", sess.ID, "chat", chatID)

	for {
		reply, err := t.ask(ctx, conv, chatPromptText)
		if err != nil {
			t.endWithError(chatID, sess.ID, err)
			return
		}

		if reply == nil {
			t.sendPlain(chatID, chatResetText)
			t.observeEnded(metrics.ReasonCancelled)
			logger.Info("chat session reset", "session", sess.ID)
			return
		}

		input := strings.TrimSpace(reply.Text)
		logger.Debug("input received", "session", sess.ID, "text", truncate(input, 50))

		thinking, _ := t.sendPlain(chatID, thinkingText)

		started := time.Now()
		answer, err := t.model.Chat(ctx, sess.Messages(), input)
		t.observeInference(time.Since(started))

		t.deleteMessage(chatID, thinking.MessageID)

		if err != nil {
			t.endWithError(chatID, sess.ID, err)
			return
		}

		sess.AddTurn(input, answer)

		if _, err := t.sendMarkdown(chatID, answer); err != nil {
			logger.Error("relay failed", "error", err, "session", sess.ID)
		} else {
			t.observeRelayed()
			logger.Info("reply relayed", "session", sess.ID, "chars", len(answer))
		}
	}
}

func (t *Telegram) handleImage(ctx context.Context, trigger *tgbotapi.Message) {
	chatID := trigger.Chat.ID

	conv, err := t.conversations.Open(chatID, t.timeout)
	if err != nil {
		t.logConflict(chatID)
		return
	}
	defer t.conversations.Close(chatID)

	sess := session.New(chatID)
	t.observeOpened("image")
	logger.Info("image session opened", "session", sess.ID, "chat", chatID)

	reply, err := t.ask(ctx, conv, imagePromptText)
	if err != nil {
		t.endWithError(chatID, sess.ID, err)
		return
	}

	if reply == nil {
		t.sendPlain(chatID, imageResetText)
		t.observeEnded(metrics.ReasonCancelled)
		logger.Info("image session reset", "session", sess.ID)
		return
	}

	if len(reply.Photo) == 0 {
		t.sendMarkdown(chatID, invalidImageText)
		t.observeEnded(metrics.ReasonInvalid)
		logger.Info("image session rejected input", "session", sess.ID)
		return
	}

	thinking, _ := t.sendPlain(chatID, thinkingText)

	answer, err := t.describePhoto(ctx, sess.ID, reply.Photo)

	t.deleteMessage(chatID, thinking.MessageID)

	if err != nil {
		t.endWithError(chatID, sess.ID, err)
		return
	}

	if _, err := t.sendMarkdown(chatID, answer); err != nil {
		logger.Error("relay failed", "error", err, "session", sess.ID)
	} else {
		t.observeRelayed()
		logger.Info("caption relayed", "session", sess.ID, "chars", len(answer))
	}

	t.observeEnded(metrics.ReasonDone)
}

func (t *Telegram) describePhoto(ctx context.Context, sessionID string, photos []tgbotapi.PhotoSize) (string, error) {
	// Telegram sends several sizes; the last one is the largest.
	photo := photos[len(photos)-1]

	data, _, err := t.downloadFile(photo.FileID)
	if err != nil {
		return "", err
	}

	jpegData, err := imaging.ReencodeJPEG(data)
	if err != nil {
		return "", err
	}

	if t.archive != nil {
		name := uuid.NewString() + ".jpg"
		if err := t.archive.Archive(ctx, name, jpegData, "image/jpeg"); err != nil {
			logger.Error("image archive failed", "error", err, "session", sessionID)
		}
	}

	started := time.Now()
	answer, err := t.model.Describe(ctx, jpegData, "image/jpeg", captionPrompt)
	t.observeInference(time.Since(started))

	return answer, err
}

func (t *Telegram) handleStart(_ context.Context, trigger *tgbotapi.Message) {
	if _, err := t.sendPlain(trigger.Chat.ID, startText); err != nil {
		logger.Error("start reply failed", "error", err, "chat", trigger.Chat.ID)
	}
}

// endWithError sends the one user-visible notice a failed session gets.
// Context cancellation means the process is shutting down; stay quiet.
func (t *Telegram) endWithError(chatID int64, sessionID string, err error) {
	switch {
	case errors.Is(err, ErrTimeout):
		t.sendHTML(chatID, timeoutText)
		t.observeEnded(metrics.ReasonTimeout)
		logger.Info("session timed out", "session", sessionID)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		t.observeEnded(metrics.ReasonError)
	default:
		logger.Error("session failed", "error", err, "session", sessionID)
		t.sendHTML(chatID, failureText)
		t.observeEnded(metrics.ReasonError)
	}
}

func (t *Telegram) logConflict(chatID int64) {
	if t.logConflicts {
		logger.Warn("conversation already open, command ignored", "chat", chatID)
	} else {
		logger.Debug("conversation already open, command ignored", "chat", chatID)
	}
}

func (t *Telegram) observeOpened(mode string) {
	if t.metrics != nil {
		t.metrics.SessionsOpened.WithLabelValues(mode).Inc()
	}
}

func (t *Telegram) observeEnded(reason string) {
	if t.metrics != nil {
		t.metrics.SessionsEnded.WithLabelValues(reason).Inc()
	}
}

func (t *Telegram) observeRelayed() {
	if t.metrics != nil {
		t.metrics.RepliesRelayed.Inc()
	}
}

func (t *Telegram) observeInference(d time.Duration) {
	if t.metrics != nil {
		t.metrics.ObserveInference(d)
	}
}
