package bot

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const stopButtonLabel = "Stop and reset conversation"
const stopCallbackData = "stop"

var stopKeyboard = tgbotapi.NewInlineKeyboardMarkup(
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(stopButtonLabel, stopCallbackData),
	),
)

// ask sends a prompt carrying the stop button and resolves on whichever
// comes first: a button press (nil message, the cancelled sentinel), the
// next inbound message, the idle timer, or context cancellation. The
// prompt message is removed regardless of outcome. The losing outcome,
// if any, stays buffered in the conversation and is discarded when the
// conversation closes.
func (t *Telegram) ask(ctx context.Context, conv *Conversation, prompt string) (*tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(conv.chatID, prompt)
	msg.ReplyMarkup = stopKeyboard

	sent, err := t.api.Send(msg)
	if err != nil {
		return nil, err
	}
	defer t.deleteMessage(conv.chatID, sent.MessageID)

	timer := time.NewTimer(conv.timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, ErrTimeout
	case cb := <-conv.callbacks:
		t.answerCallback(cb.ID)
		return nil, nil
	case reply := <-conv.messages:
		return reply, nil
	}
}
