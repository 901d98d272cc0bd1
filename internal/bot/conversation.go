package bot

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"gembot/internal/logger"
)

// ErrAlreadyInConversation is the exclusivity rejection: a chat can
// hold at most one open conversation.
var ErrAlreadyInConversation = errors.New("chat already has an open conversation")

// ErrTimeout means the user stayed silent past the idle window while a
// turn request was outstanding.
var ErrTimeout = errors.New("conversation timed out")

const inboxSize = 8

// Conversation is the bounded per-chat inbox a dispatcher waits on.
// The update loop feeds it; whichever of the two channels resolves
// first decides the turn.
type Conversation struct {
	id        string
	chatID    int64
	startedAt time.Time
	timeout   time.Duration
	messages  chan *tgbotapi.Message
	callbacks chan *tgbotapi.CallbackQuery
}

func (c *Conversation) ID() string    { return c.id }
func (c *Conversation) ChatID() int64 { return c.chatID }

type registry struct {
	mu   sync.Mutex
	open map[int64]*Conversation
}

func newRegistry() *registry {
	return &registry{open: make(map[int64]*Conversation)}
}

// Open claims the chat's conversation slot.
func (r *registry) Open(chatID int64, timeout time.Duration) (*Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.open[chatID]; ok {
		return nil, ErrAlreadyInConversation
	}

	conv := &Conversation{
		id:        uuid.NewString(),
		chatID:    chatID,
		startedAt: time.Now(),
		timeout:   timeout,
		messages:  make(chan *tgbotapi.Message, inboxSize),
		callbacks: make(chan *tgbotapi.CallbackQuery, inboxSize),
	}
	r.open[chatID] = conv

	return conv, nil
}

// Close releases the chat's slot. Anything still buffered in the
// conversation's channels is discarded with it.
func (r *registry) Close(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.open, chatID)
}

// DeliverMessage routes an inbound message to the chat's open
// conversation. Returns false when no conversation is open, in which
// case the caller may treat the message as a command trigger.
func (r *registry) DeliverMessage(msg *tgbotapi.Message) bool {
	r.mu.Lock()
	conv, ok := r.open[msg.Chat.ID]
	r.mu.Unlock()

	if !ok {
		return false
	}

	select {
	case conv.messages <- msg:
	default:
		logger.Debug("conversation inbox full, message dropped", "chat", msg.Chat.ID)
	}

	return true
}

// DeliverCallback routes a button press to the chat's open
// conversation. Returns false for presses on stale buttons.
func (r *registry) DeliverCallback(cb *tgbotapi.CallbackQuery) bool {
	if cb.Message == nil {
		return false
	}

	r.mu.Lock()
	conv, ok := r.open[cb.Message.Chat.ID]
	r.mu.Unlock()

	if !ok {
		return false
	}

	select {
	case conv.callbacks <- cb:
	default:
		logger.Debug("conversation callback buffer full, press dropped", "chat", cb.Message.Chat.ID)
	}

	return true
}
