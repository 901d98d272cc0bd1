package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"gembot/internal/llm"
)

// Session is one bounded conversational context: the transcript
// accumulated between opening a conversation and closing it. It is
// discarded when the dispatcher loop exits; nothing is persisted.
type Session struct {
	ID        string
	ChatID    int64
	StartedAt time.Time

	mu       sync.Mutex
	messages []llm.Message
}

func New(chatID int64) *Session {
	return &Session{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		StartedAt: time.Now(),
	}
}

func (s *Session) AddTurn(input, reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages,
		llm.Message{Role: llm.RoleUser, Content: input},
		llm.Message{Role: llm.RoleModel, Content: reply},
	)
}

func (s *Session) Messages() []llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]llm.Message, len(s.messages))
	copy(copied, s.messages)

	return copied
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}
