package session

import (
	"sync"
	"testing"

	"gembot/internal/llm"
)

func TestSessionAddTurn(t *testing.T) {
	s := New(123)

	s.AddTurn("hello", "hi there")

	msgs := s.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}

	if msgs[0].Role != llm.RoleUser || msgs[0].Content != "hello" {
		t.Errorf("first message mismatch: %+v", msgs[0])
	}

	if msgs[1].Role != llm.RoleModel || msgs[1].Content != "hi there" {
		t.Errorf("second message mismatch: %+v", msgs[1])
	}
}

func TestSessionMessagesIsCopy(t *testing.T) {
	s := New(123)
	s.AddTurn("hello", "hi")

	msgs := s.Messages()
	msgs[0].Content = "modified"

	// original should be unchanged
	original := s.Messages()
	if original[0].Content != "hello" {
		t.Error("Messages() should return a copy, not the original slice")
	}
}

func TestSessionIdentity(t *testing.T) {
	a := New(1)
	b := New(1)

	if a.ID == "" || a.ID == b.ID {
		t.Errorf("sessions should get distinct non-empty IDs: %q vs %q", a.ID, b.ID)
	}

	if a.StartedAt.IsZero() {
		t.Error("StartedAt should be set")
	}
}

func TestSessionConcurrentAccess(t *testing.T) {
	s := New(123)
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddTurn("ping", "pong")
		}()
	}

	wg.Wait()

	if s.Len() != 200 {
		t.Errorf("expected 200 messages, got %d", s.Len())
	}
}
