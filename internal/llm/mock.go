package llm

import (
	"context"
	"sync"
)

// Mock is a scripted collaborator for tests and local runs without
// provider credentials.
type Mock struct {
	mu sync.Mutex

	// Replies are returned in order; once exhausted the last one repeats.
	Replies []string
	// Err, when set, is returned from every call.
	Err error

	ChatCalls     []MockChatCall
	DescribeCalls []MockDescribeCall

	next int
}

type MockChatCall struct {
	History []Message
	Input   string
}

type MockDescribeCall struct {
	Image    []byte
	MimeType string
	Prompt   string
}

func NewMock(replies ...string) *Mock {
	if len(replies) == 0 {
		replies = []string{"mock reply"}
	}
	return &Mock{Replies: replies}
}

func (m *Mock) Chat(_ context.Context, history []Message, input string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := make([]Message, len(history))
	copy(snapshot, history)
	m.ChatCalls = append(m.ChatCalls, MockChatCall{History: snapshot, Input: input})

	if m.Err != nil {
		return "", m.Err
	}

	return m.reply(), nil
}

func (m *Mock) Describe(_ context.Context, image []byte, mimeType, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DescribeCalls = append(m.DescribeCalls, MockDescribeCall{Image: image, MimeType: mimeType, Prompt: prompt})

	if m.Err != nil {
		return "", m.Err
	}

	return m.reply(), nil
}

func (m *Mock) reply() string {
	if m.next >= len(m.Replies) {
		return m.Replies[len(m.Replies)-1]
	}
	r := m.Replies[m.next]
	m.next++
	return r
}
