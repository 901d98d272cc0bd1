// Package heartbeat sends the owner chat a periodic status line so a
// silent process can be told apart from a dead one.
package heartbeat

import (
	"fmt"
	"runtime"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"gembot/internal/logger"
)

type NotifyFunc func(chatID int64, message string) error

type Reporter struct {
	cron      *cron.Cron
	chatID    int64
	notify    NotifyFunc
	startedAt time.Time
}

// New schedules a status report using a standard cron expression.
func New(spec string, chatID int64, notify NotifyFunc) (*Reporter, error) {
	r := &Reporter{
		cron:      cron.New(),
		chatID:    chatID,
		notify:    notify,
		startedAt: time.Now(),
	}

	if _, err := r.cron.AddFunc(spec, r.report); err != nil {
		return nil, fmt.Errorf("heartbeat schedule %q: %w", spec, err)
	}

	return r, nil
}

func (r *Reporter) Start() {
	r.cron.Start()
	logger.Info("heartbeat started", "chatID", r.chatID)
}

func (r *Reporter) Stop() {
	r.cron.Stop()
}

func (r *Reporter) report() {
	if err := r.notify(r.chatID, StatusText(r.startedAt)); err != nil {
		logger.Error("heartbeat send failed", "error", err, "chatID", r.chatID)
	}
}

// StatusText formats the status line sent to the owner chat.
func StatusText(startedAt time.Time) string {
	uptime := time.Since(startedAt).Round(time.Minute)

	cpuUsage := 0.0
	if percents, err := cpu.Percent(time.Second, false); err == nil && len(percents) > 0 {
		cpuUsage = percents[0]
	}

	memUsage := 0.0
	if info, err := mem.VirtualMemory(); err == nil {
		memUsage = info.UsedPercent
	}

	return fmt.Sprintf("Still here. uptime %s, cpu %.0f%%, mem %.0f%%, goroutines %d",
		uptime, cpuUsage, memUsage, runtime.NumGoroutine())
}
