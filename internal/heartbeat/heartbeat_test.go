package heartbeat

import (
	"strings"
	"testing"
	"time"
)

func TestStatusText(t *testing.T) {
	text := StatusText(time.Now().Add(-90 * time.Minute))

	if !strings.Contains(text, "uptime 1h30m") {
		t.Errorf("expected uptime in status, got %q", text)
	}

	if !strings.Contains(text, "goroutines") {
		t.Errorf("expected goroutine count in status, got %q", text)
	}
}

func TestNewRejectsBadSchedule(t *testing.T) {
	notify := func(int64, string) error { return nil }

	if _, err := New("not a cron spec", 1, notify); err == nil {
		t.Fatal("expected error for invalid schedule")
	}

	if _, err := New("0 9 * * *", 1, notify); err != nil {
		t.Fatalf("valid schedule rejected: %v", err)
	}
}
